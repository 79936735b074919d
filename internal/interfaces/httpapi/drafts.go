package httpapi

import (
	"net/http"

	"github.com/riskibarqy/lineup-studio/internal/domain/lineup"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/cookie"
)

// DraftStorage hands out the draft storage backing one request.
type DraftStorage interface {
	ForRequest(w http.ResponseWriter, r *http.Request, clientID string) lineup.Storage
}

// ClientDraftStore is a server side store partitioned by client id.
type ClientDraftStore interface {
	ForClient(clientID string) lineup.Storage
}

// CookieDrafts keeps the draft in the browser's cookies.
type CookieDrafts struct {
	Options cookie.Options
}

func (d CookieDrafts) ForRequest(w http.ResponseWriter, r *http.Request, _ string) lineup.Storage {
	return cookie.New(w, r, d.Options)
}

// ServerDrafts keeps the draft server side under the client id.
type ServerDrafts struct {
	Store ClientDraftStore
}

func (d ServerDrafts) ForRequest(_ http.ResponseWriter, _ *http.Request, clientID string) lineup.Storage {
	return d.Store.ForClient(clientID)
}
