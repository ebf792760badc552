// internal/analytics/spoilage.go
package analytics

import (
	"math"
	"math/rand"

	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// SpoilageModel estimates how many units of a line item spoiled. The
// transaction log carries no ground-truth spoilage signal, so the
// estimate is injectable: production uses a seeded probabilistic
// model, tests a fixed one. Implementations must never return more
// than the item quantity.
type SpoilageModel interface {
	SpoiledUnits(item domain.LineItem) int
}

// ModelFactory builds a fresh model per aggregation worker. Models
// hold their own RNG and are not safe for concurrent use.
type ModelFactory func() SpoilageModel

// ProbabilisticModel marks an item as a spoilage event with
// probability Probability; when it is, the spoiled quantity is
// max(1, floor(quantity x u)) for u uniform in [0, MaxFraction],
// clamped to the item quantity.
type ProbabilisticModel struct {
	Probability float64
	MaxFraction float64
	rng         *rand.Rand
}

// NewProbabilisticModel builds a seeded model. The production
// defaults (probability 0.05, max fraction 0.20) come from config.
func NewProbabilisticModel(probability, maxFraction float64, seed int64) *ProbabilisticModel {
	return &ProbabilisticModel{
		Probability: probability,
		MaxFraction: maxFraction,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (m *ProbabilisticModel) SpoiledUnits(item domain.LineItem) int {
	if item.Quantity <= 0 {
		return 0
	}
	if m.rng.Float64() >= m.Probability {
		return 0
	}

	spoiled := int(math.Floor(float64(item.Quantity) * m.rng.Float64() * m.MaxFraction))
	if spoiled < 1 {
		spoiled = 1
	}
	if spoiled > item.Quantity {
		spoiled = item.Quantity
	}
	return spoiled
}

// FixedModel spoils a constant fraction of every item with the same
// max(1, floor) rule as the probabilistic model. Fraction 0 disables
// spoilage entirely.
type FixedModel struct {
	Fraction float64
}

func (m FixedModel) SpoiledUnits(item domain.LineItem) int {
	if item.Quantity <= 0 || m.Fraction <= 0 {
		return 0
	}
	spoiled := int(math.Floor(float64(item.Quantity) * m.Fraction))
	if spoiled < 1 {
		spoiled = 1
	}
	if spoiled > item.Quantity {
		spoiled = item.Quantity
	}
	return spoiled
}
