package reviews

import (
	"math"

	"github.com/aryanpatel3011/localseva_be/internal/models"
)

type Aggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ComputeAggregate derives the cached rating for a service from its full
// review set. Always recomputed from scratch, never patched
// incrementally, so the cache can't drift past one failed write. Average
// is rounded half-up on the value scaled by 10 (one decimal place).
// Empty input yields {0, 0}.
func ComputeAggregate(rs []models.Review) Aggregate {
	if len(rs) == 0 {
		return Aggregate{}
	}

	total := 0
	for _, r := range rs {
		total += r.Rating
	}

	avg := float64(total) / float64(len(rs))
	return Aggregate{
		Average: math.Floor(avg*10+0.5) / 10,
		Count:   len(rs),
	}
}
