package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/lineup-studio/internal/domain/league"
	"github.com/riskibarqy/lineup-studio/internal/platform/cache"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	CommunitiesPerPage    = 12
	CommunityLeaguesLimit = 12
	LeaderboardPerPage    = 10
	SeasonMatchesLimit    = 50
	MostPointsLimit       = 1000

	DefaultImageBaseURL    = "https://virtualprogaming.com/cdn-cgi/imagedelivery/cl8ocWLdmZDs72LEaQYaYw"
	defaultChampionWorkers = 4
	imageVariant           = "xlThumb"
)

type LeagueServiceConfig struct {
	Cache           *cache.Store
	ImageBaseURL    string
	ChampionWorkers int
	Location        *time.Location
	Logger          *logging.Logger
}

// LeagueService browses communities and derives league statistics from the provider.
type LeagueService struct {
	provider     league.Provider
	cache        *cache.Store
	imageBaseURL string
	workers      int
	location     *time.Location
	logger       *logging.Logger
	newPool      func(size int) (*ants.Pool, error)
}

func NewLeagueService(provider league.Provider, cfg LeagueServiceConfig) *LeagueService {
	base := strings.TrimRight(strings.TrimSpace(cfg.ImageBaseURL), "/")
	if base == "" {
		base = DefaultImageBaseURL
	}
	workers := cfg.ChampionWorkers
	if workers <= 0 {
		workers = defaultChampionWorkers
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		provider:     provider,
		cache:        cfg.Cache,
		imageBaseURL: base,
		workers:      workers,
		location:     loc,
		logger:       logger,
		newPool:      func(size int) (*ants.Pool, error) { return ants.NewPool(size) },
	}
}

type CommunitiesQuery struct {
	Page   int
	SortBy league.CommunitySort
	Search string
}

type CommunitiesPage struct {
	Communities []league.Community `json:"communities"`
	Page        int                `json:"page"`
	TotalPages  int                `json:"totalPages"`
	Count       int                `json:"count"`
}

// ListCommunities fetches one page, then sorts and filters it locally.
func (s *LeagueService) ListCommunities(ctx context.Context, q CommunitiesQuery) (CommunitiesPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListCommunities")
	defer span.End()

	if !q.SortBy.Valid() {
		return CommunitiesPage{}, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, q.SortBy)
	}
	page := max(q.Page, 1)
	offset := (page - 1) * CommunitiesPerPage

	raw, err := cache.Load(ctx, s.cache, "vpg:communities:"+strconv.Itoa(offset), func(ctx context.Context) (league.Page[league.Community], error) {
		return s.provider.ListCommunities(ctx, CommunitiesPerPage, offset)
	})
	if err != nil {
		return CommunitiesPage{}, fmt.Errorf("list communities: %w", err)
	}

	items := league.FilterCommunities(league.SortCommunities(raw.Data, q.SortBy), q.Search)
	out := make([]league.Community, 0, len(items))
	for _, c := range items {
		c.LogoURL = s.imageURL(c.Logo)
		out = append(out, c)
	}
	return CommunitiesPage{
		Communities: out,
		Page:        page,
		TotalPages:  league.TotalPages(raw.Count, CommunitiesPerPage),
		Count:       raw.Count,
	}, nil
}

func (s *LeagueService) ListCommunityLeagues(ctx context.Context, communitySlug string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListCommunityLeagues", attribute.String("community.slug", communitySlug))
	defer span.End()

	communitySlug = strings.TrimSpace(communitySlug)
	if communitySlug == "" {
		return nil, fmt.Errorf("%w: community slug is required", ErrInvalidInput)
	}

	raw, err := cache.Load(ctx, s.cache, "vpg:community-leagues:"+communitySlug, func(ctx context.Context) (league.Page[league.League], error) {
		return s.provider.ListCommunityLeagues(ctx, communitySlug, CommunityLeaguesLimit, 0)
	})
	if err != nil {
		return nil, fmt.Errorf("list community leagues: %w", err)
	}

	out := make([]league.League, 0, len(raw.Data))
	for _, l := range raw.Data {
		l.LogoURL = s.imageURL(l.Logo)
		out = append(out, l)
	}
	return out, nil
}

type LeagueOverview struct {
	League        league.League `json:"league"`
	Seasons       []int         `json:"seasons"`
	DefaultSeason int           `json:"defaultSeason,omitempty"`
}

// GetLeagueOverview loads the league header and its seasons; the first season is the default.
func (s *LeagueService) GetLeagueOverview(ctx context.Context, slug string) (LeagueOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeagueOverview", attribute.String("league.slug", slug))
	defer span.End()

	slug, err := requireSlug(slug)
	if err != nil {
		return LeagueOverview{}, err
	}

	var (
		info    league.League
		seasons []int
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		info, err = cache.Load(ctx, s.cache, "vpg:league:"+slug, func(ctx context.Context) (league.League, error) {
			return s.provider.GetLeague(ctx, slug)
		})
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		seasons, err = s.seasons(ctx, slug)
		return err
	})
	if err := p.Wait(); err != nil {
		return LeagueOverview{}, fmt.Errorf("get league overview: %w", err)
	}

	info.LogoURL = s.imageURL(info.Logo)
	out := LeagueOverview{League: info, Seasons: seasons}
	if len(seasons) > 0 {
		out.DefaultSeason = seasons[0]
	}
	return out, nil
}

type SeasonTable struct {
	Season     int                    `json:"season"`
	Rows       []league.TableEntry    `json:"rows"`
	Highlights league.TableHighlights `json:"highlights"`
}

// GetTable returns a season table; season 0 selects the league's default season.
func (s *LeagueService) GetTable(ctx context.Context, slug string, season int) (SeasonTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetTable",
		attribute.String("league.slug", slug), attribute.Int("league.season", season))
	defer span.End()

	slug, err := requireSlug(slug)
	if err != nil {
		return SeasonTable{}, err
	}
	season, err = s.resolveSeason(ctx, slug, season)
	if err != nil {
		return SeasonTable{}, err
	}

	rows, err := s.table(ctx, slug, season)
	if err != nil {
		return SeasonTable{}, fmt.Errorf("get table: %w", err)
	}
	highlights := league.Highlights(rows)
	highlights.MostDraws = nil
	return SeasonTable{Season: season, Rows: rows, Highlights: highlights}, nil
}

type SeasonMatches struct {
	Season int                `json:"season"`
	Team   string             `json:"team,omitempty"`
	Count  int                `json:"count"`
	Days   []league.MatchDay  `json:"days"`
	Teams  []league.Team      `json:"teams"`
	Trivia league.MatchTrivia `json:"trivia"`
}

// GetMatches merges completed and scheduled matches newest first. Trivia and the
// team list cover the whole season; the team filter only narrows the day groups.
func (s *LeagueService) GetMatches(ctx context.Context, slug string, season int, team string) (SeasonMatches, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetMatches",
		attribute.String("league.slug", slug), attribute.Int("league.season", season))
	defer span.End()

	slug, err := requireSlug(slug)
	if err != nil {
		return SeasonMatches{}, err
	}
	season, err = s.resolveSeason(ctx, slug, season)
	if err != nil {
		return SeasonMatches{}, err
	}

	statuses := []league.MatchStatus{league.MatchStatusComplete, league.MatchStatusScheduled}
	pages := make([][]league.Match, len(statuses))
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, status := range statuses {
		p.Go(func(ctx context.Context) error {
			key := fmt.Sprintf("vpg:matches:%s:%d:%s", slug, season, status)
			page, err := cache.Load(ctx, s.cache, key, func(ctx context.Context) (league.Page[league.Match], error) {
				return s.provider.ListMatches(ctx, slug, league.MatchQuery{
					Status: status,
					Season: season,
					Limit:  SeasonMatchesLimit,
				})
			})
			if err != nil {
				return fmt.Errorf("list %s matches: %w", status, err)
			}
			pages[i] = page.Data
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return SeasonMatches{}, fmt.Errorf("get matches: %w", err)
	}

	all := make([]league.Match, 0, len(pages[0])+len(pages[1]))
	for _, page := range pages {
		for _, m := range page {
			m.HomeLogoURL = s.imageURL(m.HomeLogo)
			m.AwayLogoURL = s.imageURL(m.AwayLogo)
			all = append(all, m)
		}
	}
	league.SortByKickoffDesc(all)

	team = strings.TrimSpace(team)
	filtered := league.FilterByTeam(all, team)
	return SeasonMatches{
		Season: season,
		Team:   team,
		Count:  len(filtered),
		Days:   league.GroupByDay(filtered, s.location),
		Teams:  league.TeamsFromMatches(all),
		Trivia: league.Trivia(all),
	}, nil
}

type LeaderboardQuery struct {
	Metric league.Metric
	Page   int
}

type LeaderboardPage struct {
	Metric     league.Metric        `json:"metric"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"totalPages"`
	Count      int                  `json:"count"`
	Players    []league.PlayerEntry `json:"players"`
}

// GetLeaderboard ranks players by metric, ten per page.
func (s *LeagueService) GetLeaderboard(ctx context.Context, slug string, q LeaderboardQuery) (LeaderboardPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeaderboard", attribute.String("league.slug", slug))
	defer span.End()

	slug, err := requireSlug(slug)
	if err != nil {
		return LeaderboardPage{}, err
	}
	metric := q.Metric
	if metric == "" {
		metric = league.DefaultMetric
	}
	if !metric.Valid() {
		return LeaderboardPage{}, fmt.Errorf("%w: unknown leaderboard %q", ErrInvalidInput, metric)
	}
	page := max(q.Page, 1)
	offset := (page - 1) * LeaderboardPerPage

	key := fmt.Sprintf("vpg:leaderboard:%s:%s:%d", slug, metric, offset)
	raw, err := cache.Load(ctx, s.cache, key, func(ctx context.Context) (league.Page[league.PlayerEntry], error) {
		return s.provider.GetLeaderboard(ctx, slug, metric, LeaderboardPerPage, offset)
	})
	if err != nil {
		return LeaderboardPage{}, fmt.Errorf("get leaderboard: %w", err)
	}

	players := make([]league.PlayerEntry, 0, len(raw.Data))
	for i, p := range raw.Data {
		p.Rank = offset + i + 1
		p.StatValue = metric.Value(p)
		p.UserAvatarURL = s.imageURL(p.UserAvatar)
		p.TeamLogoURL = s.imageURL(p.TeamLogo)
		players = append(players, p)
	}
	return LeaderboardPage{
		Metric:     metric,
		Page:       page,
		TotalPages: league.TotalPages(raw.Count, LeaderboardPerPage),
		Count:      raw.Count,
		Players:    players,
	}, nil
}

type MostPointsTable struct {
	Rows       []league.TableEntry    `json:"rows"`
	Highlights league.TableHighlights `json:"highlights"`
}

// GetMostPoints is the all-time points table with highlights including most draws.
func (s *LeagueService) GetMostPoints(ctx context.Context, slug string) (MostPointsTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetMostPoints", attribute.String("league.slug", slug))
	defer span.End()

	slug, err := requireSlug(slug)
	if err != nil {
		return MostPointsTable{}, err
	}

	raw, err := cache.Load(ctx, s.cache, "vpg:most-points:"+slug, func(ctx context.Context) (league.Page[league.TableEntry], error) {
		return s.provider.GetMostPoints(ctx, slug, MostPointsLimit, 0)
	})
	if err != nil {
		return MostPointsTable{}, fmt.Errorf("get most points: %w", err)
	}

	rows := s.decorateRows(raw.Data)
	return MostPointsTable{Rows: rows, Highlights: league.Highlights(rows)}, nil
}

// ListChampions fetches every season's table on a bounded worker pool and keeps
// the leader of each, in season order. Seasons without a table are skipped.
func (s *LeagueService) ListChampions(ctx context.Context, slug string) ([]league.Champion, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListChampions", attribute.String("league.slug", slug))
	defer span.End()

	slug, err := requireSlug(slug)
	if err != nil {
		return nil, err
	}
	seasons, err := s.seasons(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		return []league.Champion{}, nil
	}

	workers, err := s.newPool(min(s.workers, len(seasons)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	leaders := make([]*league.TableEntry, len(seasons))
	errs := make([]error, len(seasons))
	var wg sync.WaitGroup
	for i, season := range seasons {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			rows, err := s.table(ctx, slug, season)
			if err != nil {
				errs[i] = fmt.Errorf("season %d: %w", season, err)
				return
			}
			if len(rows) > 0 {
				leaders[i] = &rows[0]
			}
		}); err != nil {
			wg.Done()
			// Tasks already submitted still write into leaders and errs.
			wg.Wait()
			return nil, fmt.Errorf("submit season %d to worker pool: %w", season, err)
		}
	}
	wg.Wait()

	out := make([]league.Champion, 0, len(seasons))
	for i, season := range seasons {
		if errs[i] != nil {
			s.logger.WarnContext(ctx, "champion lookup failed", "league", slug, "season", season, "error", errs[i])
			return nil, fmt.Errorf("list champions: %w", errs[i])
		}
		if leaders[i] == nil {
			continue
		}
		out = append(out, league.Champion{Season: season, Team: *leaders[i]})
	}
	return out, nil
}

func (s *LeagueService) seasons(ctx context.Context, slug string) ([]int, error) {
	return cache.Load(ctx, s.cache, "vpg:seasons:"+slug, func(ctx context.Context) ([]int, error) {
		return s.provider.ListSeasons(ctx, slug)
	})
}

func (s *LeagueService) table(ctx context.Context, slug string, season int) ([]league.TableEntry, error) {
	rows, err := cache.Load(ctx, s.cache, fmt.Sprintf("vpg:table:%s:%d", slug, season), func(ctx context.Context) ([]league.TableEntry, error) {
		return s.provider.GetTable(ctx, slug, season)
	})
	if err != nil {
		return nil, err
	}
	return s.decorateRows(rows), nil
}

func (s *LeagueService) resolveSeason(ctx context.Context, slug string, season int) (int, error) {
	if season > 0 {
		return season, nil
	}
	if season < 0 {
		return 0, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	seasons, err := s.seasons(ctx, slug)
	if err != nil {
		return 0, fmt.Errorf("list seasons: %w", err)
	}
	if len(seasons) == 0 {
		return 0, fmt.Errorf("%w: league %s has no seasons", ErrNotFound, slug)
	}
	return seasons[0], nil
}

// decorateRows copies rows so cached slices are never mutated.
func (s *LeagueService) decorateRows(rows []league.TableEntry) []league.TableEntry {
	out := make([]league.TableEntry, 0, len(rows))
	for i, r := range rows {
		r.Position = i + 1
		r.TeamLogoURL = s.imageURL(r.TeamLogo)
		out = append(out, r)
	}
	return out
}

func (s *LeagueService) imageURL(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return s.imageBaseURL + "/" + id + "/" + imageVariant
}

func requireSlug(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("%w: league slug is required", ErrInvalidInput)
	}
	return slug, nil
}
