package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/linksnap/linksnap/internal/validate"
	"go.uber.org/zap"
)

// shortenRequest mirrors the client's outbound payload.
type shortenRequest struct {
	URL      string `json:"url"`
	Validity int    `json:"validity"`
	Alias    string `json:"alias"`
}

// shortenResponse is the success body. Timestamps are epoch ms.
type shortenResponse struct {
	ShortURL  string `json:"shortUrl"`
	ExpiresAt int64  `json:"expiresAt"`
}

// NewRouter builds the stub's HTTP surface. The shorten and redirect
// endpoints are plain chi handlers because the service contract wants
// plain-text error bodies; health stays on huma for the OpenAPI doc.
func NewRouter(svc *Service, logger *zap.Logger) *chi.Mux {
	router := chi.NewMux()

	api := humachi.New(router, huma.DefaultConfig("linksnap stub service", "1.0.0"))
	registerHealth(api, svc)

	router.Post("/shorten", handleShorten(svc, logger))
	router.Get("/{code}", handleRedirect(svc, logger))

	return router
}

func handleShorten(svc *Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			plainError(w, http.StatusBadRequest, "malformed request body")

			return
		}

		longURL := strings.TrimSpace(req.URL)
		if !validate.IsValidHTTPURL(longURL) {
			plainError(w, http.StatusBadRequest, "invalid url")

			return
		}

		minutes := req.Validity
		if minutes <= 0 {
			minutes = validate.DefaultValidityMinutes
		}

		link, err := svc.Shorten(r.Context(), longURL, strings.TrimSpace(req.Alias), minutes)
		if err != nil {
			if errors.Is(err, ErrAliasConflict) {
				plainError(w, http.StatusConflict, "alias taken")

				return
			}

			logger.Error("shorten failed", zap.Error(err))
			plainError(w, http.StatusInternalServerError, "internal error")

			return
		}

		logger.Info("link created",
			zap.String("code", link.Code),
			zap.Time("expiresAt", link.ExpiresAt),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(shortenResponse{
			ShortURL:  svc.ShortURL(link),
			ExpiresAt: link.ExpiresAt.UnixMilli(),
		})
	}
}

func handleRedirect(svc *Service, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		link, err := svc.Resolve(r.Context(), code)
		if err != nil {
			switch {
			case errors.Is(err, ErrExpired):
				plainError(w, http.StatusGone, "short link expired")
			case errors.Is(err, ErrNotFound):
				plainError(w, http.StatusNotFound, "short link not found")
			default:
				logger.Error("resolve failed", zap.Error(err))
				plainError(w, http.StatusInternalServerError, "internal error")
			}

			return
		}

		http.Redirect(w, r, link.LongURL, http.StatusFound)
	}
}

func plainError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}
