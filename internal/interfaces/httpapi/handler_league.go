package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/lineup-studio/internal/domain/league"
	"github.com/riskibarqy/lineup-studio/internal/usecase"
)

func (h *Handler) ListCommunities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCommunities")
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := r.URL.Query()
	out, err := h.leagueService.ListCommunities(ctx, usecase.CommunitiesQuery{
		Page:   page,
		SortBy: league.CommunitySort(strings.TrimSpace(q.Get("sort"))),
		Search: q.Get("search"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list communities failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListCommunityLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCommunityLeagues", leagueSlugAttr(r))
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	slug := r.PathValue("slug")
	out, err := h.leagueService.ListCommunityLeagues(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list community leagues failed", "community", slug, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague", leagueSlugAttr(r))
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	slug := r.PathValue("slug")
	out, err := h.leagueService.GetLeagueOverview(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league", slug, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable", leagueSlugAttr(r))
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	slug := r.PathValue("slug")
	out, err := h.leagueService.GetTable(ctx, slug, season)
	if err != nil {
		h.logger.WarnContext(ctx, "get league table failed", "league", slug, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMatches", leagueSlugAttr(r))
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	slug := r.PathValue("slug")
	out, err := h.leagueService.GetMatches(ctx, slug, season, r.URL.Query().Get("team"))
	if err != nil {
		h.logger.WarnContext(ctx, "list league matches failed", "league", slug, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard", leagueSlugAttr(r))
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	slug := r.PathValue("slug")
	out, err := h.leagueService.GetLeaderboard(ctx, slug, usecase.LeaderboardQuery{
		Metric: league.Metric(strings.TrimSpace(r.URL.Query().Get("metric"))),
		Page:   page,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "league", slug, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMostPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMostPoints", leagueSlugAttr(r))
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	slug := r.PathValue("slug")
	out, err := h.leagueService.GetMostPoints(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get most points failed", "league", slug, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListChampions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChampions", leagueSlugAttr(r))
	defer span.End()

	if !h.leagueBrowsingEnabled(w, r) {
		return
	}
	slug := r.PathValue("slug")
	out, err := h.leagueService.ListChampions(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "list champions failed", "league", slug, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) leagueBrowsingEnabled(w http.ResponseWriter, r *http.Request) bool {
	if h.leagueService != nil {
		return true
	}
	writeError(r.Context(), w, fmt.Errorf("%w: league browsing is disabled", usecase.ErrDependencyUnavailable))
	return false
}

// queryInt reads an optional non-negative integer query parameter; absent means 0.
func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, key, raw)
	}
	return v, nil
}
