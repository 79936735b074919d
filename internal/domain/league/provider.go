package league

import "context"

// Provider reads public league data from the competition platform.
type Provider interface {
	ListCommunities(ctx context.Context, limit, offset int) (Page[Community], error)
	ListCommunityLeagues(ctx context.Context, communitySlug string, limit, offset int) (Page[League], error)
	GetLeague(ctx context.Context, slug string) (League, error)
	ListSeasons(ctx context.Context, slug string) ([]int, error)
	GetTable(ctx context.Context, slug string, season int) ([]TableEntry, error)
	ListMatches(ctx context.Context, slug string, query MatchQuery) (Page[Match], error)
	GetLeaderboard(ctx context.Context, slug string, metric Metric, limit, offset int) (Page[PlayerEntry], error)
	GetMostPoints(ctx context.Context, slug string, limit, offset int) (Page[TableEntry], error)
}
