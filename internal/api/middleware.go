package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/org/floodgate/internal/auth"
	"github.com/rs/zerolog/log"
)

const sessionCookie = "floodgate_session"

// requestIDMiddleware attaches a UUID request ID to each request.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := newRequestID()
		w.Header().Set("X-Request-ID", id)
		ctx := withRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// responseRecorder captures the status code for logging and metrics.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

// accessLogMiddleware writes one structured log line per request.
func accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rr, r)

		evt := log.Info()
		if rr.statusCode >= 500 {
			evt = log.Error()
		}
		evt.Str("request_id", requestIDFromCtx(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rr.statusCode).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("ip", clientIP(r)).
			Msg("request")
	})
}

// capabilityMiddleware attempts the capability-token short circuit on
// content routes. It only ever adds a grant: any failure leaves the
// request untouched and the session middleware decides.
func capabilityMiddleware(validator *auth.CapabilityValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hash := chi.URLParam(r, "hash")
			indices := chi.URLParam(r, "indices")
			token := r.URL.Query().Get("token")

			if synthesized, ok := validator.TryGrant(hash, indices, token); ok {
				capabilityGrantsTotal.Inc()
				r = r.WithContext(withSynthesizedToken(r.Context(), synthesized))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sessionMiddleware is the single authoritative enforcement point. It
// verifies the session credential, a capability-synthesized token if
// one was installed, otherwise the session cookie, and attaches the
// resolved identity to the context. Any failure is a 401.
func sessionMiddleware(signer *auth.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := synthesizedTokenFromCtx(r.Context())
			if token == "" {
				cookie, err := r.Cookie(sessionCookie)
				if err != nil || cookie.Value == "" {
					authFailuresTotal.Inc()
					writeError(w, http.StatusUnauthorized, codeAuth, "not authenticated")
					return
				}
				token = cookie.Value
			}

			cred, err := signer.Verify(token)
			if err != nil {
				authFailuresTotal.Inc()
				writeError(w, http.StatusUnauthorized, codeAuth, "not authenticated")
				return
			}

			ctx := withCredential(r.Context(), cred)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
