package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-ordering/auth"
	models "restaurant-ordering/model"
	"restaurant-ordering/service"
)

// fakeService implements service.ServiceInterface; unset funcs panic.
type fakeService struct {
	ReadyFn           func() error
	ListMenuFn        func() ([]service.MenuItemDTO, error)
	CategoriesFn      func() ([]string, error)
	CreateMenuItemFn  func(in service.MenuItemInput) (string, error)
	OpenOrderFn       func() (models.Order, error)
	GetOrderFn        func(id string) (models.Order, error)
	AddToOrderFn      func(id, item string) (models.Order, error)
	RemoveFromOrderFn func(id, item string) (models.Order, error)
	SubmitContactFn   func(form service.ContactForm) (models.Contact, error)
	SignUpFn          func(form service.SignUpForm) error
	SignInFn          func(email, password string) (models.Session, error)
	StartOAuthFn      func(provider string) (string, string, error)
	CompleteOAuthFn   func(code, verifier string) (models.Session, error)
	SignOutFn         func(token string) error
	ProfileFn         func(token string) (models.Profile, error)

	closed []string
}

func (f *fakeService) Ready(context.Context) error {
	return f.ReadyFn()
}

func (f *fakeService) PasswordRules(password string) auth.PasswordRules {
	return auth.CheckPassword(password)
}

func (f *fakeService) ListMenu(context.Context) ([]service.MenuItemDTO, error) {
	return f.ListMenuFn()
}

func (f *fakeService) Categories(context.Context) ([]string, error) {
	return f.CategoriesFn()
}

func (f *fakeService) CreateMenuItem(_ context.Context, in service.MenuItemInput) (string, error) {
	return f.CreateMenuItemFn(in)
}

func (f *fakeService) OpenOrder(context.Context) (models.Order, error) {
	return f.OpenOrderFn()
}

func (f *fakeService) GetOrder(id string) (models.Order, error) {
	return f.GetOrderFn(id)
}

func (f *fakeService) AddToOrder(id, item string) (models.Order, error) {
	return f.AddToOrderFn(id, item)
}

func (f *fakeService) RemoveFromOrder(id, item string) (models.Order, error) {
	return f.RemoveFromOrderFn(id, item)
}

func (f *fakeService) CloseOrder(id string) {
	f.closed = append(f.closed, id)
}

func (f *fakeService) SubmitContact(_ context.Context, form service.ContactForm) (models.Contact, error) {
	return f.SubmitContactFn(form)
}

func (f *fakeService) SignUp(_ context.Context, form service.SignUpForm) error {
	return f.SignUpFn(form)
}

func (f *fakeService) SignIn(_ context.Context, email, password string) (models.Session, error) {
	return f.SignInFn(email, password)
}

func (f *fakeService) StartOAuth(provider string) (string, string, error) {
	return f.StartOAuthFn(provider)
}

func (f *fakeService) CompleteOAuth(_ context.Context, code, verifier string) (models.Session, error) {
	return f.CompleteOAuthFn(code, verifier)
}

func (f *fakeService) SignOut(_ context.Context, token string) error {
	return f.SignOutFn(token)
}

func (f *fakeService) Profile(_ context.Context, token string) (models.Profile, error) {
	return f.ProfileFn(token)
}

func newRouter(f *fakeService) *mux.Router {
	r := mux.NewRouter()
	NewHandler(f, nil).RegisterRoutes(r)
	return r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	rec := serve(newRouter(&fakeService{}), "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReady(t *testing.T) {
	down := true
	r := newRouter(&fakeService{ReadyFn: func() error {
		if down {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	}})

	rec := serve(r, "GET", "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "database unavailable", errorBody(t, rec))

	down = false
	rec = serve(r, "GET", "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckPassword(t *testing.T) {
	r := newRouter(&fakeService{})

	rec := serve(r, "POST", "/auth/password/check", `{"password":"abcDEF"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"min_length":true,"has_lowercase":true,"has_uppercase":true,"has_digit":false,"has_symbol":false,"valid":false}`, rec.Body.String())

	rec = serve(r, "POST", "/auth/password/check", `{"password":"Kimchi#7"}`)
	assert.Contains(t, rec.Body.String(), `"valid":true`)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", &service.ValidationError{Msg: "All fields are required."}, http.StatusBadRequest, "All fields are required."},
		{"not found", errors.Wrap(service.ErrNotFound, "order session"), http.StatusNotFound, "not found"},
		{"catalog", errors.Wrap(service.ErrCatalogUnavailable, "db down"), http.StatusServiceUnavailable, "failed to load menu items"},
		{"auth off", service.ErrAuthUnavailable, http.StatusServiceUnavailable, "auth not configured"},
		{"signed out", service.ErrUnauthenticated, http.StatusUnauthorized, "not signed in"},
		{"provider 400", &auth.Error{Status: 400, Message: "Invalid login credentials"}, http.StatusBadRequest, "Invalid login credentials"},
		{"provider 401", &auth.Error{Status: 401, Message: "invalid JWT"}, http.StatusUnauthorized, "invalid JWT"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.err
			r := newRouter(&fakeService{GetOrderFn: func(string) (models.Order, error) { return models.Order{}, err }})
			rec := serve(r, "GET", "/order/sessions/s1", "")
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, errorBody(t, rec))
		})
	}
}

func TestListMenu(t *testing.T) {
	r := newRouter(&fakeService{ListMenuFn: func() ([]service.MenuItemDTO, error) {
		return []service.MenuItemDTO{{MenuItem: models.MenuItem{ID: "a", Name: "Bibimbap", Category: "Mains"}}}, nil
	}})
	rec := serve(r, "GET", "/menu", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Bibimbap", got[0]["name"])
}

func TestCreateMenuItem(t *testing.T) {
	var got service.MenuItemInput
	r := newRouter(&fakeService{CreateMenuItemFn: func(in service.MenuItemInput) (string, error) {
		got = in
		return "new-id", nil
	}})

	rec := serve(r, "POST", "/menu", `{"name":"Japchae","price":"11.25","category":"Mains"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"new-id"}`, rec.Body.String())
	assert.Equal(t, "11.25", got.Price.StringFixed(2))

	rec = serve(r, "POST", "/menu", `{bad`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid json", errorBody(t, rec))
}

func TestOrderRoutes(t *testing.T) {
	var added, removed [2]string
	f := &fakeService{
		OpenOrderFn: func() (models.Order, error) { return models.Order{SessionID: "s1", Total: "0.00"}, nil },
		AddToOrderFn: func(id, item string) (models.Order, error) {
			added = [2]string{id, item}
			return models.Order{SessionID: id, Total: "12.50", ItemCount: 1}, nil
		},
		RemoveFromOrderFn: func(id, item string) (models.Order, error) {
			removed = [2]string{id, item}
			return models.Order{SessionID: id, Total: "0.00"}, nil
		},
	}
	r := newRouter(f)

	rec := serve(r, "POST", "/order/sessions", "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(r, "POST", "/order/sessions/s1/items/a", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [2]string{"s1", "a"}, added)
	var o models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, "12.50", o.Total)

	rec = serve(r, "DELETE", "/order/sessions/s1/items/a", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [2]string{"s1", "a"}, removed)

	rec = serve(r, "DELETE", "/order/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"s1"}, f.closed)
}

func TestSubmitContact(t *testing.T) {
	r := newRouter(&fakeService{SubmitContactFn: func(form service.ContactForm) (models.Contact, error) {
		if form.Email == "" {
			return models.Contact{}, &service.ValidationError{Msg: "All fields are required."}
		}
		return models.Contact{ID: 3, Email: form.Email, CreatedAt: time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)}, nil
	}})

	rec := serve(r, "POST", "/contact", `{"first_name":"A","last_name":"B","email":"a@b.co","message":"hi"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var c models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, "a@b.co", c.Email)
	assert.Contains(t, rec.Body.String(), `"created_at":"2024-05-01T18:30:00Z"`)

	rec = serve(r, "POST", "/contact", `{"first_name":"A"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required.", errorBody(t, rec))
}

func TestSignInAndProfileBearer(t *testing.T) {
	var profileToken, signOutToken string
	r := newRouter(&fakeService{
		SignInFn: func(email, password string) (models.Session, error) {
			return models.Session{AccessToken: "tok", User: models.User{Email: email}}, nil
		},
		ProfileFn: func(token string) (models.Profile, error) {
			profileToken = token
			return models.Profile{FirstName: "Jane"}, nil
		},
		SignOutFn: func(token string) error {
			signOutToken = token
			return nil
		},
	})

	rec := serve(r, "POST", "/auth/login", `{"email":"jane@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var sess models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, "tok", sess.AccessToken)

	req := httptest.NewRequest("GET", "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer tok")
	prec := httptest.NewRecorder()
	r.ServeHTTP(prec, req)
	assert.Equal(t, http.StatusOK, prec.Code)
	assert.Equal(t, "tok", profileToken)

	req = httptest.NewRequest("POST", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "cookie-tok"})
	lrec := httptest.NewRecorder()
	r.ServeHTTP(lrec, req)
	assert.Equal(t, http.StatusNoContent, lrec.Code)
	assert.Equal(t, "cookie-tok", signOutToken)
}

func TestSignOutClearsCookieWhenRemoteFails(t *testing.T) {
	r := newRouter(&fakeService{SignOutFn: func(token string) error {
		return errors.Wrap(&auth.Error{Status: 500, Message: "upstream down"}, "sign out")
	}})

	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "cookie-tok"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "access_token cookie should be expired")
}

func TestGoogleSignInSetsVerifierCookie(t *testing.T) {
	r := newRouter(&fakeService{StartOAuthFn: func(provider string) (string, string, error) {
		assert.Equal(t, "google", provider)
		return "https://idp.test/authorize", "verifier-1", nil
	}})

	rec := serve(r, "GET", "/auth/google", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://idp.test/authorize", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, verifierCookie, cookies[0].Name)
	assert.Equal(t, "verifier-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestOAuthCallback(t *testing.T) {
	f := &fakeService{CompleteOAuthFn: func(code, verifier string) (models.Session, error) {
		if code != "good" || verifier != "verifier-1" {
			return models.Session{}, &auth.Error{Status: 400, Message: "invalid flow state"}
		}
		return models.Session{AccessToken: "tok", ExpiresIn: 3600}, nil
	}}
	r := newRouter(f)

	call := func(target string, withCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", target, nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: verifierCookie, Value: "verifier-1"})
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := call("/auth/callback?code=good", true)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			token = c.Value
		}
	}
	assert.Equal(t, "tok", token)

	for _, tc := range []struct {
		target string
		cookie bool
	}{
		{"/auth/callback?code=bad", true},
		{"/auth/callback", true},
		{"/auth/callback?code=good", false},
	} {
		rec := call(tc.target, tc.cookie)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/auth/login?error=auth_failed", rec.Header().Get("Location"), tc.target)
	}
}
