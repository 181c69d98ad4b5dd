package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/org/floodgate/internal/auth"
)

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires.UTC(),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// AuthenticateHandler handles POST /api/auth/authenticate
func (s *Server) AuthenticateHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			writeError(w, http.StatusUnauthorized, codeAuth, "bad credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, codeInternal, "authentication failed")
		return
	}

	issued := time.Now()
	token, err := s.signer.Sign(user.Username, issued)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "signing credential")
		return
	}

	setSessionCookie(w, token, issued.Add(s.signer.TTL()))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"username": user.Username,
	})
}

// RegisterHandler handles POST /api/auth/register. Only the first
// account may be created this way; once any user exists the endpoint is
// closed and accounts are managed out of band.
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	hasUsers, err := s.users.HasUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "checking users")
		return
	}
	if hasUsers {
		writeError(w, http.StatusForbidden, codeAccess, "registration is closed")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "username and password are required")
		return
	}

	user, err := s.users.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "creating user")
		return
	}

	issued := time.Now()
	token, err := s.signer.Sign(user.Username, issued)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, "signing credential")
		return
	}

	setSessionCookie(w, token, issued.Add(s.signer.TTL()))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"username": user.Username,
	})
}

// VerifyHandler handles GET /api/auth/verify
func (s *Server) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	cred := credentialFromCtx(r.Context())
	if cred == nil {
		writeError(w, http.StatusUnauthorized, codeAuth, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":  cred.Username,
		"issuedAt":  cred.IssuedAt.Unix(),
		"expiresAt": cred.ExpiresAt.Unix(),
	})
}

// LogoutHandler handles GET /api/auth/logout
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
