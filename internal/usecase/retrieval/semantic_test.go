package retrieval

import (
	"math"
	"testing"

	"github.com/askshelf/askshelf/internal/domain/item"
)

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.3, -0.7, 2.1},
		{5},
	}
	for _, v := range vectors {
		if got := CosineSimilarity(v, v); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("CosineSimilarity(v, v) = %v for %v, expected 1.0", got, v)
		}
	}
}

func TestCosineSimilarity_ZeroAndMismatch(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{"zero left", []float32{0, 0}, []float32{1, 2}},
		{"zero right", []float32{1, 2}, []float32{0, 0}},
		{"dim mismatch", []float32{1, 2, 3}, []float32{1, 2}},
		{"both empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); got != 0 {
				t.Errorf("expected 0, got %v", got)
			}
		})
	}
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Errorf("expected ~0 for orthogonal vectors, got %v", got)
	}
}

func TestSemanticCandidates(t *testing.T) {
	query := []float32{1, 0, 0}

	aligned := testItem(t, "1", "Aligned", "").WithEmbedding([]float32{1, 0, 0}, "m")
	opposite := testItem(t, "2", "Opposite", "").WithEmbedding([]float32{-1, 0, 0}, "m")
	halfway := testItem(t, "3", "Halfway", "").WithEmbedding([]float32{1, 1, 0}, "m")
	noVec := testItem(t, "4", "No Vector", "")
	staleModel := testItem(t, "5", "Stale", "").WithEmbedding([]float32{1, 0, 0}, "old-model")
	wrongDim := testItem(t, "6", "Wrong Dim", "").WithEmbedding([]float32{1, 0}, "m")

	items := []item.Item{opposite, noVec, staleModel, halfway, wrongDim, aligned}

	got := semanticCandidates(query, items, "m", 3, 20)
	if len(got) != 3 {
		t.Fatalf("expected 3 scorable candidates, got %d", len(got))
	}
	if got[0].Item.ID() != "1" || got[1].Item.ID() != "3" || got[2].Item.ID() != "2" {
		t.Errorf("unexpected order: %v, %v, %v", got[0].Item.ID(), got[1].Item.ID(), got[2].Item.ID())
	}
}

func TestSemanticCandidates_Cap(t *testing.T) {
	query := []float32{1}
	items := make([]item.Item, 30)
	for i := range items {
		items[i] = testItem(t, string(rune('a'+i)), "T", "").WithEmbedding([]float32{1}, "m")
	}

	got := semanticCandidates(query, items, "m", 1, 20)
	if len(got) != 20 {
		t.Errorf("expected cap of 20, got %d", len(got))
	}
}
