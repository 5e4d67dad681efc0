package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"restaurant-ordering/auth"
	"restaurant-ordering/service"
)

const (
	verifierCookie = "pkce_verifier"
	sessionCookie  = "access_token"
)

// Handler is the HTTP layer that talks to service.Service
type Handler struct {
	svc service.ServiceInterface
	log *zap.Logger
	// SecureCookies sets the Secure flag on auth cookies.
	SecureCookies bool
}

// NewHandler returns a Handler instance
func NewHandler(s service.ServiceInterface, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: s, log: log}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.logRequests)
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/readyz", h.Ready).Methods("GET")

	// Menu
	r.HandleFunc("/menu", h.ListMenu).Methods("GET")
	r.HandleFunc("/menu/categories", h.Categories).Methods("GET")
	r.HandleFunc("/menu", h.CreateMenuItem).Methods("POST")

	// Order sessions
	r.HandleFunc("/order/sessions", h.OpenOrder).Methods("POST")
	r.HandleFunc("/order/sessions/{id}", h.GetOrder).Methods("GET")
	r.HandleFunc("/order/sessions/{id}", h.CloseOrder).Methods("DELETE")
	r.HandleFunc("/order/sessions/{id}/items/{itemID}", h.AddToOrder).Methods("POST")
	r.HandleFunc("/order/sessions/{id}/items/{itemID}", h.RemoveFromOrder).Methods("DELETE")

	// Contact
	r.HandleFunc("/contact", h.SubmitContact).Methods("POST")

	// Accounts
	r.HandleFunc("/auth/signup", h.SignUp).Methods("POST")
	r.HandleFunc("/auth/login", h.SignIn).Methods("POST")
	r.HandleFunc("/auth/password/check", h.CheckPassword).Methods("POST")
	r.HandleFunc("/auth/google", h.GoogleSignIn).Methods("GET")
	r.HandleFunc("/auth/callback", h.OAuthCallback).Methods("GET")
	r.HandleFunc("/auth/logout", h.SignOut).Methods("POST")
	r.HandleFunc("/auth/profile", h.Profile).Methods("GET")
}

// --- request shapes ---
type passwordReq struct {
	Password string `json:"password"`
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// fail maps service errors to status codes. Only messages meant for the user
// are echoed back; anything else is logged and reported generically.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var aerr *auth.Error
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeErr(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrCatalogUnavailable):
		writeErr(w, http.StatusServiceUnavailable, service.ErrCatalogUnavailable.Error())
	case errors.Is(err, service.ErrAuthUnavailable):
		writeErr(w, http.StatusServiceUnavailable, service.ErrAuthUnavailable.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, service.ErrUnauthenticated.Error())
	case errors.As(err, &aerr):
		code := http.StatusBadRequest
		if aerr.Status == http.StatusUnauthorized || aerr.Status == http.StatusForbidden {
			code = http.StatusUnauthorized
		}
		writeErr(w, code, aerr.Error())
	default:
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

// bearerToken reads the Authorization header, falling back to the cookie set
// after a federated sign-in.
func bearerToken(r *http.Request) string {
	v := r.Header.Get("Authorization")
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /readyz
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ready(r.Context()); err != nil {
		h.log.Warn("not ready", zap.Error(err))
		writeErr(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
