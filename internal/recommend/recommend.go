// internal/recommend/recommend.go
package recommend

import (
	"context"
	"time"

	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

// Recommendation is the collaborator's answer to "how much should I
// order".
type Recommendation struct {
	RecommendedQuantity int    `json:"recommended_quantity"`
	Reasoning           string `json:"reasoning"`
}

// Recommender is the external AI order-quantity collaborator. It is
// consumed, never implemented, by the analytics engine: failures are
// surfaced to the user verbatim and never replaced with a default
// recommendation.
type Recommender interface {
	Recommend(ctx context.Context, product domain.Product, start, end time.Time) (*Recommendation, error)
}

// DependencyError marks a collaborator failure (transport error, bad
// status, malformed payload). Handlers translate it to a distinct
// user-facing failure message.
type DependencyError struct {
	Message string
	Err     error
}

func (e *DependencyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DependencyError) Unwrap() error { return e.Err }
