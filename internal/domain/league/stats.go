package league

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TableHighlights are the standout rows of a table. Ties keep the earlier row.
type TableHighlights struct {
	MostGoalsScored   *TableEntry `json:"mostGoalsScored,omitempty"`
	MostGoalsConceded *TableEntry `json:"mostGoalsConceded,omitempty"`
	MostWins          *TableEntry `json:"mostWins,omitempty"`
	MostLosses        *TableEntry `json:"mostLosses,omitempty"`
	MostDraws         *TableEntry `json:"mostDraws,omitempty"`
}

func Highlights(rows []TableEntry) TableHighlights {
	return TableHighlights{
		MostGoalsScored:   maxBy(rows, func(r TableEntry) int { return r.ScoreFor }),
		MostGoalsConceded: maxBy(rows, func(r TableEntry) int { return r.ScoreAgainst }),
		MostWins:          maxBy(rows, func(r TableEntry) int { return r.Wins }),
		MostLosses:        maxBy(rows, func(r TableEntry) int { return r.Losses }),
		MostDraws:         maxBy(rows, func(r TableEntry) int { return r.Draws }),
	}
}

func maxBy[T any](items []T, key func(T) int) *T {
	if len(items) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if key(items[i]) > key(items[best]) {
			best = i
		}
	}
	out := items[best]
	return &out
}

// MatchTrivia summarises the completed matches of a season.
type MatchTrivia struct {
	Completed        int    `json:"completed"`
	DrawPercentage   string `json:"drawPercentage"`
	BiggestWin       *Match `json:"biggestWin,omitempty"`
	BiggestWinMargin int    `json:"biggestWinMargin"`
	MostGoals        *Match `json:"mostGoals,omitempty"`
	MostGoalsTotal   int    `json:"mostGoalsTotal"`
}

func Trivia(matches []Match) MatchTrivia {
	completed := make([]Match, 0, len(matches))
	draws := 0
	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		completed = append(completed, m)
		if m.HomeScore == m.AwayScore {
			draws++
		}
	}

	out := MatchTrivia{Completed: len(completed), DrawPercentage: "0.0"}
	if len(completed) == 0 {
		return out
	}
	out.DrawPercentage = fmt.Sprintf("%.1f", float64(draws)/float64(len(completed))*100)
	out.BiggestWin = maxBy(completed, Match.GoalDifference)
	out.BiggestWinMargin = out.BiggestWin.GoalDifference()
	out.MostGoals = maxBy(completed, Match.TotalGoals)
	out.MostGoalsTotal = out.MostGoals.TotalGoals()
	return out
}

// SortByKickoffDesc orders matches newest first; unparseable dates sink to the end.
func SortByKickoffDesc(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		ta, okA := a.KickoffAt()
		tb, okB := b.KickoffAt()
		switch {
		case okA && okB:
			return tb.Compare(ta)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

func FilterByTeam(matches []Match, team string) []Match {
	team = strings.TrimSpace(team)
	if team == "" {
		return matches
	}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Involves(team) {
			out = append(out, m)
		}
	}
	return out
}

// MatchDay groups matches that kick off on the same calendar day.
type MatchDay struct {
	Date    string  `json:"date"`
	Matches []Match `json:"matches"`
}

// GroupByDay keeps the incoming order of days and of matches within a day.
func GroupByDay(matches []Match, loc *time.Location) []MatchDay {
	if loc == nil {
		loc = time.UTC
	}
	out := make([]MatchDay, 0)
	index := make(map[string]int)
	for _, m := range matches {
		date := "unknown"
		if t, ok := m.KickoffAt(); ok {
			date = t.In(loc).Format(time.DateOnly)
		}
		i, ok := index[date]
		if !ok {
			i = len(out)
			index[date] = i
			out = append(out, MatchDay{Date: date})
		}
		out[i].Matches = append(out[i].Matches, m)
	}
	return out
}

// TeamsFromMatches lists every club once, sorted by name.
func TeamsFromMatches(matches []Match) []Team {
	seen := make(map[string]Team)
	for _, m := range matches {
		if m.HomeName != "" {
			if _, ok := seen[m.HomeName]; !ok {
				seen[m.HomeName] = Team{Name: m.HomeName, Logo: m.HomeLogo, LogoURL: m.HomeLogoURL}
			}
		}
		if m.AwayName != "" {
			if _, ok := seen[m.AwayName]; !ok {
				seen[m.AwayName] = Team{Name: m.AwayName, Logo: m.AwayLogo, LogoURL: m.AwayLogoURL}
			}
		}
	}
	out := make([]Team, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Team) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// CommunitySort is a local ordering of a communities page.
type CommunitySort string

const (
	CommunitySortNone    CommunitySort = ""
	CommunitySortName    CommunitySort = "name"
	CommunitySortPlayers CommunitySort = "players"
	CommunitySortTeams   CommunitySort = "teams"
	CommunitySortRegion  CommunitySort = "region"
)

func (s CommunitySort) Valid() bool {
	switch s {
	case CommunitySortNone, CommunitySortName, CommunitySortPlayers, CommunitySortTeams, CommunitySortRegion:
		return true
	}
	return false
}

// SortCommunities orders by name or region ascending, or by player or team count descending.
func SortCommunities(items []Community, by CommunitySort) []Community {
	out := slices.Clone(items)
	switch by {
	case CommunitySortName:
		slices.SortStableFunc(out, func(a, b Community) int { return cmp.Compare(a.Name, b.Name) })
	case CommunitySortPlayers:
		slices.SortStableFunc(out, func(a, b Community) int { return cmp.Compare(b.PlayerCount, a.PlayerCount) })
	case CommunitySortTeams:
		slices.SortStableFunc(out, func(a, b Community) int { return cmp.Compare(b.TeamCount, a.TeamCount) })
	case CommunitySortRegion:
		slices.SortStableFunc(out, func(a, b Community) int { return cmp.Compare(a.Region, b.Region) })
	}
	return out
}

// FilterCommunities keeps names containing search, case-insensitively.
func FilterCommunities(items []Community, search string) []Community {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return items
	}
	out := make([]Community, 0, len(items))
	for _, c := range items {
		if strings.Contains(strings.ToLower(c.Name), search) {
			out = append(out, c)
		}
	}
	return out
}

// TotalPages is ceil(count/perPage).
func TotalPages(count, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}
