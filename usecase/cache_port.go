package usecase

import "context"

// RankingCache abstracts the read-through cache used by the ranking queries.
// Get reports a miss via its boolean return; failures are treated as misses
// by callers.
type RankingCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}
