package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"restaurant-ordering/auth"
	"restaurant-ordering/service"
)

// SubmitContact handles POST /contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req service.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	c, err := h.svc.SubmitContact(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// SignUp handles POST /auth/signup
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpForm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.SignUp(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "confirmation sent"})
}

// CheckPassword handles POST /auth/password/check
func (h *Handler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	var req passwordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	rules := h.svc.PasswordRules(req.Password)
	writeJSON(w, http.StatusOK, struct {
		auth.PasswordRules
		Valid bool `json:"valid"`
	}{rules, rules.Valid()})
}

// SignIn handles POST /auth/login
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	sess, err := h.svc.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// GoogleSignIn handles GET /auth/google. The PKCE verifier rides in a short
// lived cookie until the provider redirects back to /auth/callback.
func (h *Handler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	u, verifier, err := h.svc.StartOAuth("google")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     verifierCookie,
		Value:    verifier,
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, u, http.StatusFound)
}

// OAuthCallback handles GET /auth/callback?code=...
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: verifierCookie, Path: "/auth", MaxAge: -1})

	code := r.URL.Query().Get("code")
	c, err := r.Cookie(verifierCookie)
	if code == "" || err != nil {
		http.Redirect(w, r, "/auth/login?error=auth_failed", http.StatusFound)
		return
	}
	sess, err := h.svc.CompleteOAuth(r.Context(), code, c.Value)
	if err != nil {
		h.log.Warn("oauth callback failed", zap.Error(err))
		http.Redirect(w, r, "/auth/login?error=auth_failed", http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.AccessToken,
		Path:     "/",
		MaxAge:   sess.ExpiresIn,
		HttpOnly: true,
		Secure:   h.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// SignOut handles POST /auth/logout
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	err := h.svc.SignOut(r.Context(), bearerToken(r))
	// The local session is gone either way.
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Path: "/", MaxAge: -1})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /auth/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context(), bearerToken(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
