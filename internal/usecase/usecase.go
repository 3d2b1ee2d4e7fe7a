// Package usecase holds the application services behind the HTTP delivery
// layer: listing, status workflow, manual/email import and analytics.
package usecase

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotApplicable guards the status workflow: a posting parked as
	// archived, old or not_useful has to leave that state before it can be
	// marked applied again.
	ErrNotApplicable = errors.New("opportunity is not applicable in its current status")
)

// ListCache is the slice of the Redis cache the usecases need. A nil or
// unavailable cache degrades to direct repository reads.
type ListCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateOpportunityCaches(ctx context.Context) error
}
