// Package reward turns a uniform draw into a weighted rarity tier and an item.
package reward

import (
	"fmt"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/utils"
)

type threshold struct {
	rarity     domain.Rarity
	cumulative float64
}

// thresholds is built once from Weights and never reordered.
var thresholds = buildThresholds(Weights)

func buildThresholds(weights []Weight) []threshold {
	out := make([]threshold, 0, len(weights))
	cumulative := 0.0
	for _, w := range weights {
		cumulative += w.Percent
		out = append(out, threshold{rarity: w.Rarity, cumulative: cumulative})
	}
	return out
}

// SampleRarity returns the first tier whose cumulative weight reaches draw.
// draw is expected in [0, 100).
func SampleRarity(draw float64) domain.Rarity {
	for _, t := range thresholds {
		if draw <= t.cumulative {
			return t.rarity
		}
	}
	return thresholds[len(thresholds)-1].rarity
}

// SampleItem picks an item of the sampled tier. If the pool has no item of that tier
// the pick is uniform over the whole pool. pick(n) must return a value in [0, n).
func SampleItem(pool []domain.Item, draw float64, pick func(int) int) (domain.Item, error) {
	if len(pool) == 0 {
		return domain.Item{}, domain.ErrEmptyPool
	}

	rarity := SampleRarity(draw)
	candidates := make([]domain.Item, 0, len(pool))
	for _, item := range pool {
		if item.Rarity == rarity {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	idx := pick(len(candidates))
	if idx < 0 || idx >= len(candidates) {
		return domain.Item{}, fmt.Errorf("pick returned %d for %d candidates", idx, len(candidates))
	}
	return candidates[idx], nil
}

// Sampler draws items with an injectable randomness source.
type Sampler struct {
	draw func() float64
	pick func(int) int
}

// NewSampler returns a sampler backed by math/rand.
func NewSampler() *Sampler {
	return &Sampler{draw: utils.RandomPercent, pick: utils.RandomIntn}
}

// NewSamplerWithSource is used by tests to fix the outcome.
func NewSamplerWithSource(draw func() float64, pick func(int) int) *Sampler {
	return &Sampler{draw: draw, pick: pick}
}

// Sample draws one item from pool.
func (s *Sampler) Sample(pool []domain.Item) (domain.Item, error) {
	return SampleItem(pool, s.draw(), s.pick)
}

// SampleN draws n independent items from pool.
func (s *Sampler) SampleN(pool []domain.Item, n int) ([]domain.Item, error) {
	items := make([]domain.Item, 0, n)
	for i := 0; i < n; i++ {
		item, err := s.Sample(pool)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
