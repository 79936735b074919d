package httpapi

import (
	"net/http"

	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/cookie"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler, cookieOpts cookie.Options) {
	client := func(fn http.HandlerFunc) http.Handler {
		return RequireClientID(cookieOpts, fn)
	}

	mux.Handle("GET /v1/lineup", client(handler.GetLineup))
	mux.Handle("PUT /v1/lineup/formation", client(handler.SelectFormation))
	mux.Handle("PATCH /v1/lineup/players/{slotID}", client(handler.EditPlayer))
	mux.Handle("PUT /v1/lineup/jersey", client(handler.SetJerseyOptions))
	mux.Handle("PUT /v1/lineup/badge-color", client(handler.SetBadgeColor))
	mux.Handle("PATCH /v1/lineup/presentation", client(handler.UpdatePresentation))
	mux.Handle("POST /v1/lineup/field/toggle", client(handler.ToggleFieldVariant))
	mux.Handle("PUT /v1/lineup/background", client(handler.UploadBackground))
	mux.Handle("DELETE /v1/lineup/background", client(handler.RemoveBackground))
	mux.Handle("POST /v1/lineup/reset", client(handler.ResetLineup))
	mux.Handle("GET /v1/lineup/export.json", client(handler.ExportLineupJSON))
	mux.Handle("POST /v1/lineup/import", client(handler.ImportLineup))
	mux.Handle("GET /v1/lineup/export.png", client(handler.ExportLineupImage))
	mux.Handle("GET /v1/lineup/surface", client(handler.GetLineupSurface))
	mux.Handle("POST /v1/lineup/editor/{slotID}", client(handler.OpenEditor))
	mux.Handle("DELETE /v1/lineup/editor", client(handler.CloseEditor))
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/communities", handler.ListCommunities)
	mux.HandleFunc("GET /v1/communities/{slug}/leagues", handler.ListCommunityLeagues)
	mux.HandleFunc("GET /v1/leagues/{slug}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{slug}/table", handler.GetLeagueTable)
	mux.HandleFunc("GET /v1/leagues/{slug}/matches", handler.ListLeagueMatches)
	mux.HandleFunc("GET /v1/leagues/{slug}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leagues/{slug}/most-points", handler.GetMostPoints)
	mux.HandleFunc("GET /v1/leagues/{slug}/champions", handler.ListChampions)
}
