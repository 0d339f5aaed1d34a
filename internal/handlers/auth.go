package handlers

import (
	"net/http"

	"iturinews/internal/apperr"
	"iturinews/internal/auth"
	"iturinews/internal/middleware"
	"iturinews/internal/models"
)

// Auth groups the sign-in, sign-out, and current-principal handlers.
type Auth struct {
	auth          *auth.Service
	secureCookies bool
}

// NewAuth creates a new Auth handler group. secureCookies marks the
// session cookie HTTPS-only; disable it only in development.
func NewAuth(authService *auth.Service, secureCookies bool) *Auth {
	return &Auth{auth: authService, secureCookies: secureCookies}
}

// signInResponse returns the principal together with its session token.
// The SPA may keep the token itself or rely on the cookie.
type signInResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// SignIn exchanges a credential for a principal and a session token.
// The body carries either an external credential or a local
// email/password pair.
func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Credential string `json:"credential,omitempty"`
		Email      string `json:"email,omitempty"`
		Password   string `json:"password,omitempty"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	var (
		user  *models.User
		token string
		err   error
	)
	switch {
	case body.Credential != "":
		user, token, err = h.auth.SignIn(r.Context(), body.Credential)
	case body.Email != "":
		user, token, err = h.auth.SignInWithPassword(r.Context(), body.Email, body.Password)
	default:
		err = apperr.Validation("credential or email is required")
	}
	if err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, token, false)
	writeJSON(w, http.StatusOK, signInResponse{User: user, Token: token})
}

// SignOut invalidates the current session token.
func (h *Auth) SignOut(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if err := h.auth.SignOut(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	h.setSessionCookie(w, "", true)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Me returns the current principal, or 401 when anonymous.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())
	if principal == nil {
		writeError(w, apperr.Unauthorized("get current user"))
		return
	}
	writeJSON(w, http.StatusOK, principal)
}

func (h *Auth) setSessionCookie(w http.ResponseWriter, token string, expire bool) {
	cookie := &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if expire {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}
