package lexicon

import (
	"testing"

	"github.com/askshelf/askshelf/internal/domain/item"
)

func testItem(t *testing.T, id, title string) item.Item {
	t.Helper()
	it, err := item.New(id, title, "Author", 1, true, "A1", 0)
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	return it
}

func TestTokenizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []string
	}{
		{"basic", "Introduction to Algorithms", []string{"introduction", "algorithms"}},
		{"keeps plus and hash", "The C++ and C# Handbook", []string{"the", "c++", "and", "handbook"}},
		{"drops short tokens", "Go in 21 Days", []string{"days"}},
		{"punctuation only", "?!,.", nil},
		{"mixed case", "DATA Structures", []string{"data", "structures"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeTitle(tt.title)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d]: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestBuild_Vocabulary(t *testing.T) {
	lex := Build([]item.Item{
		testItem(t, "1", "Introduction to Algorithms"),
		testItem(t, "2", "Data Structures in C"),
	})

	for _, tok := range []string{"introduction", "algorithms", "data", "structures"} {
		if !lex.InVocabulary(tok) {
			t.Errorf("expected %q in vocabulary", tok)
		}
	}
	if lex.InVocabulary("physics") {
		t.Error("unexpected vocabulary entry 'physics'")
	}
}

func TestBuild_DerivedSynonyms_MinCount(t *testing.T) {
	// "data" and "structures" co-occur twice; "data" and "handbook" once.
	lex := Build([]item.Item{
		testItem(t, "1", "Data Structures Made Easy"),
		testItem(t, "2", "Advanced Data Structures"),
		testItem(t, "3", "Data Handbook"),
	})

	syns := lex.DerivedSynonyms("data")
	if !contains(syns, "structures") {
		t.Errorf("expected 'structures' among derived synonyms of 'data', got %v", syns)
	}
	if contains(syns, "handbook") {
		t.Errorf("pair below min count must be excluded, got %v", syns)
	}
}

func TestBuild_DerivedSynonyms_CapAndOrder(t *testing.T) {
	// "core" co-occurs with eight partners, each pair appearing twice, but
	// with different counts so the ordering is observable.
	items := []item.Item{
		testItem(t, "1", "Core Alpha Beta Gamma Delta Epsilon Zeta Ethics Theta"),
		testItem(t, "2", "Core Alpha Beta Gamma Delta Epsilon Zeta Ethics Theta"),
		testItem(t, "3", "Core Alpha Volume"),
		testItem(t, "4", "Core Alpha Volume"),
	}
	lex := Build(items)

	syns := lex.DerivedSynonyms("core")
	if len(syns) != maxDerivedPerToken {
		t.Fatalf("expected cap of %d, got %d: %v", maxDerivedPerToken, len(syns), syns)
	}
	// "alpha" has count 4, everything else 2: it must rank first.
	if syns[0] != "alpha" {
		t.Errorf("expected 'alpha' first (highest count), got %v", syns)
	}
	// Remaining slots follow first-seen order.
	want := []string{"beta", "gamma", "delta", "epsilon", "zeta"}
	for i, w := range want {
		if syns[i+1] != w {
			t.Errorf("tie-break order: expected %q at %d, got %v", w, i+1, syns)
			break
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	lex := Build(nil)
	if lex.VocabularySize() != 0 {
		t.Errorf("expected empty vocabulary, got %d", lex.VocabularySize())
	}
	if syns := lex.DerivedSynonyms("anything"); syns != nil {
		t.Errorf("expected nil synonyms, got %v", syns)
	}
}

func TestHolder_Replace(t *testing.T) {
	first := Build([]item.Item{testItem(t, "1", "Original Snapshot")})
	h := NewHolder(first)

	if got := h.Get(); got != first {
		t.Fatal("expected seeded lexicon")
	}

	second := Build([]item.Item{testItem(t, "2", "Fresh Snapshot")})
	h.Replace(second)

	if got := h.Get(); got != second {
		t.Fatal("expected replaced lexicon")
	}
	if !h.Get().InVocabulary("fresh") {
		t.Error("expected new vocabulary after replace")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
