package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-organizer/internal/logger"
	"github.com/Shivanand-hulikatti/event-organizer/internal/model"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Logger returns an access-log middleware writing one line per request.
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.WithContext(r.Context()).Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// CORS allows the single-page client to call the API from another origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OrganizerSession resolves the calling organizer and stores it in the
// request context.
//
// A bearer token is verified as an HS256 JWT signed with secret and its
// subject becomes the organizer id. Without a token, devOrganizerID is used
// when non-empty; otherwise the request is rejected.
func OrganizerSession(secret, devOrganizerID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			orgID, err := resolveOrganizer(r, secret, devOrganizerID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(model.WithOrganizer(r.Context(), orgID)))
		})
	}
}

var (
	errMissingToken = errors.New("authentication required")
	errInvalidToken = errors.New("invalid or expired token")
)

func resolveOrganizer(r *http.Request, secret, devOrganizerID string) (string, error) {
	auth := r.Header.Get("Authorization")
	token, hasToken := strings.CutPrefix(auth, "Bearer ")
	if !hasToken || token == "" || secret == "" {
		if devOrganizerID != "" {
			return devOrganizerID, nil
		}
		return "", errMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", errInvalidToken
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", errInvalidToken
	}
	return sub, nil
}
