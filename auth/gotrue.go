package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"

	models "restaurant-ordering/model"
)

// GoTrue talks to the hosted auth REST API (/auth/v1).
type GoTrue struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewGoTrue(projectURL, anonKey string, client *http.Client) *GoTrue {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoTrue{
		baseURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		anonKey: anonKey,
		http:    client,
	}
}

type credentials struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

type pkceGrant struct {
	AuthCode     string `json:"auth_code"`
	CodeVerifier string `json:"code_verifier"`
}

// errorBody covers the error shapes the auth API has used over time.
type errorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (g *GoTrue) SignUp(ctx context.Context, email, password string, metadata map[string]any, redirectTo string) error {
	q := url.Values{}
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return g.do(ctx, http.MethodPost, "/signup", q, "", credentials{Email: email, Password: password, Data: metadata}, nil)
}

func (g *GoTrue) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	var s models.Session
	q := url.Values{"grant_type": {"password"}}
	err := g.do(ctx, http.MethodPost, "/token", q, "", credentials{Email: email, Password: password}, &s)
	return s, err
}

// AuthorizeURL is where the browser goes to start a federated sign-in.
func (g *GoTrue) AuthorizeURL(provider, redirectTo, codeChallenge string) string {
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	if codeChallenge != "" {
		q.Set("code_challenge", codeChallenge)
		q.Set("code_challenge_method", "s256")
	}
	return g.baseURL + "/authorize?" + q.Encode()
}

func (g *GoTrue) ExchangeCode(ctx context.Context, code, verifier string) (models.Session, error) {
	var s models.Session
	q := url.Values{"grant_type": {"pkce"}}
	err := g.do(ctx, http.MethodPost, "/token", q, "", pkceGrant{AuthCode: code, CodeVerifier: verifier}, &s)
	return s, err
}

func (g *GoTrue) SignOut(ctx context.Context, accessToken string) error {
	return g.do(ctx, http.MethodPost, "/logout", nil, accessToken, nil, nil)
}

func (g *GoTrue) User(ctx context.Context, accessToken string) (models.User, error) {
	var u models.User
	err := g.do(ctx, http.MethodGet, "/user", nil, accessToken, nil, &u)
	return u, err
}

func (g *GoTrue) do(ctx context.Context, method, path string, q url.Values, bearer string, in, out any) error {
	u := g.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("apikey", g.anonKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+g.anonKey)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	e := &Error{Status: status}
	var b errorBody
	if json.Unmarshal(raw, &b) != nil {
		return e
	}
	e.Code = b.ErrorCode
	if e.Code == "" {
		if s, ok := b.Code.(string); ok {
			e.Code = s
		}
	}
	if e.Code == "" {
		e.Code = b.Error
	}
	for _, m := range []string{b.Msg, b.ErrorDescription, b.Message, b.Error} {
		if m != "" {
			e.Message = m
			break
		}
	}
	return e
}
