package retrieval

import "github.com/askshelf/askshelf/internal/domain/item"

// Candidate is one scored item from either scoring path.
type Candidate struct {
	Item  item.Item
	Score float64
}

// Fuser merges the lexical and semantic candidate lists into one set with a
// single score per item ID. The lexical synthetic scale (>= 1) and the cosine
// scale ([-1, 1]) are not naturally comparable; the strategy is pluggable so
// the heuristic can be replaced without touching the rest of the pipeline.
type Fuser interface {
	Fuse(lexical, semantic []Candidate) []Candidate
}

// MaxFuser keeps, per item ID, the highest score seen from either path.
// On a score tie the first-inserted entry wins (lexical before semantic),
// which keeps output deterministic.
type MaxFuser struct{}

// Fuse implements Fuser.
func (MaxFuser) Fuse(lexical, semantic []Candidate) []Candidate {
	order := make([]string, 0, len(lexical)+len(semantic))
	best := make(map[string]Candidate, len(lexical)+len(semantic))

	insert := func(c Candidate) {
		id := c.Item.ID()
		existing, ok := best[id]
		if !ok {
			best[id] = c
			order = append(order, id)
			return
		}
		if c.Score > existing.Score {
			best[id] = c
		}
	}

	for _, c := range lexical {
		insert(c)
	}
	for _, c := range semantic {
		insert(c)
	}

	fused := make([]Candidate, 0, len(order))
	for _, id := range order {
		fused = append(fused, best[id])
	}
	return fused
}
