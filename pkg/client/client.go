// Package client talks to the Sahyogi REST API and keeps the session of
// the logged-in identity.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrNotLoggedIn is returned by calls that need a token when the session
// is empty or expired
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

type Client struct {
	http    *resty.Client
	session *Session
}

type Option func(*Client)

// WithSession uses s instead of a fresh empty session
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New returns a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(15*time.Second).
			SetHeader("Accept", "application/json"),
		session: NewSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// Login authenticates against the kind's collection and stores the token
// in the session
func (c *Client) Login(ctx context.Context, kind Kind, email, password string) (*Account, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/"+string(kind)+"/authenticate", loginRequest{Email: email, Password: password}, &out, false)
	if err != nil {
		return nil, err
	}
	if err := c.session.Set(out.Token); err != nil {
		return nil, err
	}
	return out.Account, nil
}

// Logout clears the session. The server keeps no session state.
func (c *Client) Logout() {
	c.session.Clear()
}

// Register creates an account. A valid session token is forwarded so an
// admin can create other admins.
func (c *Client) Register(ctx context.Context, kind Kind, req RegisterRequest) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/"+string(kind)+"/add", req, &out, c.session.Valid()); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the account of the session's identity
func (c *Client) Me(ctx context.Context) (*Account, error) {
	claims := c.session.Claims()
	if claims == nil || !c.session.Valid() {
		return nil, ErrNotLoggedIn
	}
	kind, err := ParseKind(claims.Role)
	if err != nil {
		return nil, err
	}

	var out Account
	if err := c.do(ctx, http.MethodGet, "/"+string(kind)+"/me", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Follow(ctx context.Context, kind Kind, id string) (*FollowResult, error) {
	return c.follow(ctx, kind, "follow", id)
}

func (c *Client) Unfollow(ctx context.Context, kind Kind, id string) (*FollowResult, error) {
	return c.follow(ctx, kind, "unfollow", id)
}

func (c *Client) follow(ctx context.Context, kind Kind, action, id string) (*FollowResult, error) {
	if !kind.Followable() {
		return nil, fmt.Errorf("%s accounts cannot be followed", kind)
	}
	var out FollowResult
	if err := c.do(ctx, http.MethodPost, "/"+string(kind)+"/"+action+"/"+id, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Followers(ctx context.Context, kind Kind, id string) (*Followers, error) {
	if !kind.Followable() {
		return nil, fmt.Errorf("%s accounts cannot be followed", kind)
	}
	var out Followers
	if err := c.do(ctx, http.MethodGet, "/"+string(kind)+"/followers/"+id, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Posts lists posts matching f, newest first
func (c *Client) Posts(ctx context.Context, f PostFilter) ([]Post, error) {
	query := map[string]string{}
	for key, value := range map[string]string{
		"type":       f.Type,
		"authorId":   f.AuthorID,
		"authorType": f.AuthorType,
		"tag":        f.Tag,
	} {
		if value != "" {
			query[key] = value
		}
	}

	var out []Post
	req := c.http.R().SetQueryParams(query)
	if err := c.send(ctx, req, http.MethodGet, "/posts/getall", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Post reads one post; the server counts this as a view
func (c *Client) Post(ctx context.Context, id string) (*Post, error) {
	var out Post
	if err := c.do(ctx, http.MethodGet, "/posts/getbyid/"+id, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Contact(ctx context.Context, req ContactRequest) (*Submission, error) {
	var out Submission
	if err := c.do(ctx, http.MethodPost, "/contact/add", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Feedback(ctx context.Context, req FeedbackRequest) (*Submission, error) {
	var out Submission
	if err := c.do(ctx, http.MethodPost, "/feedback/add", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, auth bool) error {
	req := c.http.R()
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if auth {
		if !c.session.Valid() {
			return ErrNotLoggedIn
		}
		req.SetAuthToken(c.session.Token())
	}
	return c.send(ctx, req, method, path, out)
}

func (c *Client) send(ctx context.Context, req *resty.Request, method, path string, out interface{}) error {
	var env envelope
	resp, err := req.SetContext(ctx).SetResult(&env).SetError(&env).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.IsError() {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg, Code: env.Code}
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
