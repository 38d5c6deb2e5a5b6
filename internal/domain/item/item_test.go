package item

import "testing"

func TestNew_RequiresID(t *testing.T) {
	if _, err := New("", "Title", "Author", 1, true, "A1", 0); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestNew_ClampsNegatives(t *testing.T) {
	it, err := New("1", "Title", "Author", -3, true, "A1", -100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Copies() != 0 || it.MaxPages() != 0 {
		t.Errorf("negatives must collapse to zero: copies=%d pages=%d", it.Copies(), it.MaxPages())
	}
}

func TestHasValidEmbedding(t *testing.T) {
	base, _ := New("1", "Title", "Author", 1, true, "A1", 0)

	tests := []struct {
		name  string
		item  Item
		model string
		dim   int
		want  bool
	}{
		{"no vector", base, "m", 3, false},
		{"matching", base.WithEmbedding([]float32{1, 2, 3}, "m"), "m", 3, true},
		{"stale model", base.WithEmbedding([]float32{1, 2, 3}, "old"), "m", 3, false},
		{"wrong dim", base.WithEmbedding([]float32{1, 2}, "m"), "m", 3, false},
		{"dim unchecked", base.WithEmbedding([]float32{1, 2}, "m"), "m", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.HasValidEmbedding(tt.model, tt.dim); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithEmbedding_DoesNotMutateOriginal(t *testing.T) {
	base, _ := New("1", "Title", "Author", 1, true, "A1", 0)
	withVec := base.WithEmbedding([]float32{1}, "m")

	if base.Embedding() != nil || base.EmbeddingModel() != "" {
		t.Error("original item must stay unchanged")
	}
	if withVec.EmbeddingModel() != "m" {
		t.Errorf("copy must carry the model tag, got %q", withVec.EmbeddingModel())
	}
}

func TestEmbeddingText(t *testing.T) {
	withAuthor, _ := New("1", "Clean Code", "Robert Martin", 1, true, "A1", 0)
	if got := withAuthor.EmbeddingText(); got != "Clean Code by Robert Martin" {
		t.Errorf("got %q", got)
	}

	noAuthor, _ := New("2", "Anonymous Title", "", 1, true, "A1", 0)
	if got := noAuthor.EmbeddingText(); got != "Anonymous Title" {
		t.Errorf("got %q", got)
	}
}

func TestSearchText_Lowercased(t *testing.T) {
	it, _ := New("1", "Clean Code", "Robert Martin", 1, true, "A1", 0)
	if got := it.SearchText(); got != "clean code robert martin" {
		t.Errorf("got %q", got)
	}
}

func TestDedupeKey_NormalizesCaseAndSpace(t *testing.T) {
	a, _ := New("1", " Clean Code ", "Robert Martin", 1, true, "A1", 0)
	b, _ := New("2", "clean code", "ROBERT MARTIN", 3, false, "B2", 400)
	if a.DedupeKey() != b.DedupeKey() {
		t.Errorf("keys differ: %q vs %q", a.DedupeKey(), b.DedupeKey())
	}
}
