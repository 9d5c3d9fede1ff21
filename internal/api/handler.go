// Package api exposes the catalog over a JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lepinkainen/marquee/internal/catalog"
	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/logging"
)

type catalogService interface {
	Resolve(ctx context.Context, titleID string, kind catalog.MediaKind) (*catalog.TitleRecord, error)
	TrailerFor(ctx context.Context, titleID string, kind catalog.MediaKind) (*catalog.VideoCandidate, error)
	SimilarTitles(ctx context.Context, titleID string, kind catalog.MediaKind, page int) ([]catalog.SimilarTitleRef, error)
	Cast(ctx context.Context, titleID string, kind catalog.MediaKind) ([]catalog.CastMember, error)
	Search(ctx context.Context, query string, kind catalog.MediaKind, page int) ([]catalog.TitleRecord, error)
	DiscoverByGenre(ctx context.Context, genreID int, kind catalog.MediaKind, page int, opts catalog.DiscoverOptions) ([]catalog.TitleRecord, error)
	Genres(ctx context.Context, kind catalog.MediaKind) ([]catalog.Genre, error)
	WatchProviders(ctx context.Context, titleID string, kind catalog.MediaKind, region string) (*catalog.WatchProviders, error)
}

var _ catalogService = (*catalog.Service)(nil)

// errBadRequest marks malformed query parameters.
var errBadRequest = errors.New("bad request")

// Handler serves catalog endpoints.
type Handler struct {
	Service catalogService
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc catalogService) *Handler {
	return &Handler{Service: svc}
}

// TrailerResponse wraps the selected trailer with ready-to-use URLs.
// Trailer is null when the title has none.
type TrailerResponse struct {
	Trailer  *catalog.VideoCandidate `json:"trailer"`
	WatchURL string                  `json:"watchUrl,omitempty"`
	EmbedURL string                  `json:"embedUrl,omitempty"`
}

// PageResponse wraps a page of list results.
type PageResponse[T any] struct {
	Page  int `json:"page"`
	Items []T `json:"items"`
}

func (h *Handler) Title(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := pathParams(w, r)
	if !ok {
		return
	}
	record, err := h.Service.Resolve(r.Context(), id, kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *Handler) Trailer(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := pathParams(w, r)
	if !ok {
		return
	}
	trailer, err := h.Service.TrailerFor(r.Context(), id, kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := TrailerResponse{Trailer: trailer}
	if trailer != nil {
		resp.WatchURL = trailer.WatchURL()
		resp.EmbedURL = trailer.EmbedURL()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := pathParams(w, r)
	if !ok {
		return
	}
	page, err := intQuery(r, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	refs, err := h.Service.SimilarTitles(r.Context(), id, kind, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse[catalog.SimilarTitleRef]{Page: max(page, 1), Items: refs})
}

func (h *Handler) Cast(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := pathParams(w, r)
	if !ok {
		return
	}
	cast, err := h.Service.Cast(r.Context(), id, kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cast)
}

func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := pathParams(w, r)
	if !ok {
		return
	}
	providers, err := h.Service.WatchProviders(r.Context(), id, kind, r.URL.Query().Get("region"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	page, err := intQuery(r, "page", 1)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := h.Service.Search(r.Context(), r.URL.Query().Get("q"), kind, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse[catalog.TitleRecord]{Page: max(page, 1), Items: records})
}

func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	var (
		opts catalog.DiscoverOptions
		errs []error
	)
	genre, err := intQuery(r, "genre", 0)
	errs = append(errs, err)
	page, err := intQuery(r, "page", 1)
	errs = append(errs, err)
	opts.MinVoteCount, err = intQuery(r, "min_votes", 0)
	errs = append(errs, err)
	opts.YearFrom, err = intQuery(r, "year_from", 0)
	errs = append(errs, err)
	opts.YearTo, err = intQuery(r, "year_to", 0)
	errs = append(errs, err)
	opts.MinVoteAverage, err = floatQuery(r, "min_rating")
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		writeError(w, r, err)
		return
	}
	opts.SortBy = r.URL.Query().Get("sort")
	opts.Language = r.URL.Query().Get("language")

	records, err := h.Service.DiscoverByGenre(r.Context(), genre, kind, page, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PageResponse[catalog.TitleRecord]{Page: max(page, 1), Items: records})
}

func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	genres, err := h.Service.Genres(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func kindParam(w http.ResponseWriter, r *http.Request) (catalog.MediaKind, bool) {
	kind, err := catalog.ParseMediaKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, r, err)
		return "", false
	}
	return kind, true
}

func pathParams(w http.ResponseWriter, r *http.Request) (catalog.MediaKind, string, bool) {
	kind, ok := kindParam(w, r)
	if !ok {
		return "", "", false
	}
	return kind, mux.Vars(r)["id"], true
}

func intQuery(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, key)
	}
	return v, nil
}

func floatQuery(r *http.Request, key string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, key)
	}
	return v, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrInvalidTitleID),
		errors.Is(err, catalog.ErrInvalidMediaKind),
		errors.Is(err, catalog.ErrEmptyQuery),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsProviderUnavailable(err), apperrors.IsRateLimitError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("Request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
