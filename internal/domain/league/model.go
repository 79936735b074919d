package league

import (
	"strings"
	"time"
)

// Page is one offset/limit window of a listing plus the total count.
type Page[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

type Community struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Logo        string `json:"logo,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	Platform    string `json:"platform,omitempty"`
	PlayerCount int    `json:"player_count"`
	TeamCount   int    `json:"team_count"`
	Region      string `json:"region,omitempty"`
}

type League struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Logo    string `json:"logo,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// TableEntry is one team row of a season table or the all-time points table.
type TableEntry struct {
	Position     int    `json:"position"`
	TeamName     string `json:"team_name"`
	TeamAbbr     string `json:"team_abbr"`
	TeamSlug     string `json:"team_slug"`
	TeamLogo     string `json:"team_logo,omitempty"`
	TeamLogoURL  string `json:"teamLogoUrl,omitempty"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	ScoreFor     int    `json:"score_for"`
	ScoreAgainst int    `json:"score_against"`
	Points       int    `json:"points"`
	Titles       int    `json:"titles"`
}

type MatchStatus string

const (
	MatchStatusComplete  MatchStatus = "complete"
	MatchStatusScheduled MatchStatus = "scheduled"
)

type Match struct {
	ID          int64       `json:"id"`
	Datetime    string      `json:"datetime"`
	Status      MatchStatus `json:"status"`
	HomeName    string      `json:"home_name"`
	HomeLogo    string      `json:"home_logo,omitempty"`
	HomeLogoURL string      `json:"homeLogoUrl,omitempty"`
	HomeScore   int         `json:"home_score"`
	AwayName    string      `json:"away_name"`
	AwayLogo    string      `json:"away_logo,omitempty"`
	AwayLogoURL string      `json:"awayLogoUrl,omitempty"`
	AwayScore   int         `json:"away_score"`
	MatchDay    *int        `json:"match_day"`
}

var kickoffLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// KickoffAt parses Datetime; ok is false for empty or unknown formats.
func (m Match) KickoffAt() (time.Time, bool) {
	raw := strings.TrimSpace(m.Datetime)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range kickoffLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (m Match) Completed() bool {
	return m.Status == MatchStatusComplete
}

func (m Match) Involves(team string) bool {
	return m.HomeName == team || m.AwayName == team
}

func (m Match) GoalDifference() int {
	d := m.HomeScore - m.AwayScore
	if d < 0 {
		return -d
	}
	return d
}

func (m Match) TotalGoals() int {
	return m.HomeScore + m.AwayScore
}

// Team is a club seen in a match listing.
type Team struct {
	Name    string `json:"name"`
	Logo    string `json:"logo,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type PlayerEntry struct {
	Rank            int    `json:"rank"`
	Username        string `json:"username"`
	UserAvatar      string `json:"user_avatar,omitempty"`
	UserAvatarURL   string `json:"userAvatarUrl,omitempty"`
	UserNationality string `json:"user_nationality"`
	TeamName        string `json:"team_name"`
	TeamLogo        string `json:"team_logo,omitempty"`
	TeamLogoURL     string `json:"teamLogoUrl,omitempty"`
	MatchesPlayed   *int   `json:"matches_played"`
	Goals           *int   `json:"goals"`
	Assists         *int   `json:"assists"`
	CleanSheet      *int   `json:"clean_sheet"`
	Saves           *int   `json:"saves"`
	Interceptions   *int   `json:"interceptions"`
	Points          *int   `json:"points"`
	StatValue       int    `json:"statValue"`
}

// Metric names a player leaderboard.
type Metric string

const (
	MetricTopScorer         Metric = "top_scorer"
	MetricTopAssist         Metric = "top_assist"
	MetricTopGoalkeeper     Metric = "top_gk"
	MetricMostGames         Metric = "most_games"
	MetricMostInterceptions Metric = "most_interceptions"
	MetricMostCleanSheets   Metric = "most_cleansheets"
)

// DefaultMetric is the leaderboard shown first.
const DefaultMetric = MetricTopGoalkeeper

func Metrics() []Metric {
	return []Metric{
		MetricTopScorer,
		MetricTopAssist,
		MetricTopGoalkeeper,
		MetricMostGames,
		MetricMostInterceptions,
		MetricMostCleanSheets,
	}
}

func (m Metric) Valid() bool {
	for _, known := range Metrics() {
		if m == known {
			return true
		}
	}
	return false
}

// Value picks the statistic a leaderboard ranks by; missing values count as zero.
func (m Metric) Value(p PlayerEntry) int {
	switch m {
	case MetricTopScorer:
		return deref(p.Goals)
	case MetricTopAssist:
		return deref(p.Assists)
	case MetricTopGoalkeeper:
		return deref(p.Saves)
	case MetricMostGames:
		return deref(p.MatchesPlayed)
	case MetricMostInterceptions:
		return deref(p.Interceptions)
	case MetricMostCleanSheets:
		return deref(p.CleanSheet)
	default:
		return deref(p.Points)
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// MatchQuery filters a league's match listing.
type MatchQuery struct {
	Status MatchStatus
	Season int
	Limit  int
	Offset int
}

// Champion is the first row of a finished season's table.
type Champion struct {
	Season int        `json:"season"`
	Team   TableEntry `json:"team"`
}
