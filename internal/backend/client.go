package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/noteboard/internal/domain/note"
)

// DefaultBaseURL is where the notes service listens in a local setup.
const DefaultBaseURL = "http://localhost:5000/api"

// RequestIDHeader carries a fresh id on every outbound request.
const RequestIDHeader = "X-Request-ID"

// Client performs the notes REST operations against a fixed base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger enables debug traffic logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", baseURL)
	}
	c := &Client{baseURL: u, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type notesResponse struct {
	Notes []note.Note `json:"notes"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ListNotes fetches every note.
func (c *Client) ListNotes(ctx context.Context) ([]note.Note, error) {
	return c.fetchNotes(ctx, "list notes", "/notes/getAll", nil)
}

// SearchByTitle fetches the notes whose title matches term.
func (c *Client) SearchByTitle(ctx context.Context, term string) ([]note.Note, error) {
	return c.fetchNotes(ctx, "search by title", "/notes/search", url.Values{"title": {term}})
}

// SearchByTag fetches the notes carrying tag term.
func (c *Client) SearchByTag(ctx context.Context, term string) ([]note.Note, error) {
	return c.fetchNotes(ctx, "search by tag", "/notes/search/tags", url.Values{"tag": {term}})
}

// Search dispatches to the title or tag search endpoint.
func (c *Client) Search(ctx context.Context, mode note.SearchMode, term string) ([]note.Note, error) {
	if mode == note.SearchByTitle {
		return c.SearchByTitle(ctx, term)
	}
	return c.SearchByTag(ctx, term)
}

// CreateNote posts a new note.
func (c *Client) CreateNote(ctx context.Context, draft note.Draft) error {
	return c.send(ctx, "create note", http.MethodPost, "/notes/add", draft.Payload())
}

// UpdateNote patches the note with the given id.
func (c *Client) UpdateNote(ctx context.Context, id string, draft note.Draft) error {
	return c.send(ctx, "update note", http.MethodPatch, "/notes/update/"+url.PathEscape(id), draft.Payload())
}

// DeleteNote deletes the note with the given id.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.send(ctx, "delete note", http.MethodDelete, "/notes/delete/"+url.PathEscape(id), nil)
}

func (c *Client) fetchNotes(ctx context.Context, op, path string, query url.Values) ([]note.Note, error) {
	resp, body, err := c.do(ctx, op, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if !success(resp.StatusCode) {
		return nil, apiError(op, resp.StatusCode, body)
	}
	var out notesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if out.Notes == nil {
		return []note.Note{}, nil
	}
	return out.Notes, nil
}

func (c *Client) send(ctx context.Context, op, method, path string, payload any) error {
	resp, body, err := c.do(ctx, op, method, path, nil, payload)
	if err != nil {
		return err
	}
	if !success(resp.StatusCode) {
		return apiError(op, resp.StatusCode, body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any) (*http.Response, []byte, error) {
	target := c.baseURL.String() + path
	if query != nil {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: encoding body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logTraffic(ctx, op, req, 0, time.Since(start), err)
		return nil, nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.logTraffic(ctx, op, req, resp.StatusCode, time.Since(start), err)
	if err != nil {
		return nil, nil, &NetworkError{Op: op, Err: fmt.Errorf("reading response: %w", err)}
	}
	return resp, body, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func apiError(op string, status int, body []byte) error {
	var msg messageResponse
	if err := json.Unmarshal(body, &msg); err != nil {
		return &APIError{Op: op, StatusCode: status}
	}
	return &APIError{Op: op, StatusCode: status, Message: strings.TrimSpace(msg.Message)}
}

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var nerr *NetworkError
	return errors.As(err, &nerr)
}

// ServerMessage returns the message an APIError carried, if any.
func ServerMessage(err error) (string, bool) {
	var aerr *APIError
	if errors.As(err, &aerr) && aerr.Message != "" {
		return aerr.Message, true
	}
	return "", false
}
