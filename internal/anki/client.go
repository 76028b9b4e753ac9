package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arcanaland/ankimark/internal/card"
)

// DefaultEndpoint is where AnkiConnect listens unless configured otherwise
const DefaultEndpoint = "http://127.0.0.1:8765"

// DefaultVersion is the AnkiConnect API version that wraps responses in
// {"result", "error"}
const DefaultVersion = 6

var (
	ErrServiceUnavailable = errors.New("AnkiConnect is not reachable")
	ErrActionFailed       = errors.New("AnkiConnect action failed")
)

// ActionError is an error reported by AnkiConnect in the response body
type ActionError struct {
	Action  string
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

// Is lets errors.Is match ErrActionFailed
func (e *ActionError) Is(target error) bool {
	return target == ErrActionFailed
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Client talks to AnkiConnect over HTTP
type Client struct {
	endpoint   string
	version    int
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request made by the client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// NewClient creates a client for the given endpoint and API version
func NewClient(endpoint string, version int, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if version <= 0 {
		version = DefaultVersion
	}

	c := &Client{
		endpoint:   endpoint,
		version:    version,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke performs one action and decodes its result into result (if non-nil)
func (c *Client) Invoke(ctx context.Context, action string, params, result any) error {
	body, err := json.Marshal(request{Action: action, Version: c.version, Params: params})
	if err != nil {
		return fmt.Errorf("error encoding %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %s", ErrServiceUnavailable, action, resp.Status)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("error decoding %s response: %w", action, err)
	}

	if r.Error != nil {
		return &ActionError{Action: action, Message: *r.Error}
	}

	if result == nil || len(r.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Result, result); err != nil {
		return fmt.Errorf("error decoding %s result: %w", action, err)
	}

	return nil
}

// Version returns the AnkiConnect API version; used as a reachability check
func (c *Client) Version(ctx context.Context) (int, error) {
	var v int
	if err := c.Invoke(ctx, "version", nil, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// DeckNames lists every deck in the collection
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.Invoke(ctx, "deckNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// CreateDeck creates a deck; existing decks are left untouched
func (c *Client) CreateDeck(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := c.Invoke(ctx, "createDeck", map[string]string{"deck": name}, &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Picture is an image AnkiConnect stores in the media folder and appends to
// the named fields
type Picture struct {
	Path     string   `json:"path"`
	Filename string   `json:"filename"`
	Fields   []string `json:"fields"`
}

// Note is the payload of addNote
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags,omitempty"`
	Picture   []Picture         `json:"picture,omitempty"`
}

// NewNote builds a note for a parsed card
func NewNote(deckName, modelName string, c card.Card, tags []string) Note {
	n := Note{
		DeckName:  deckName,
		ModelName: modelName,
		Fields: map[string]string{
			card.FieldFront: c.Front,
			card.FieldBack:  c.Back,
		},
		Tags: tags,
	}
	for _, img := range c.Images {
		n.Picture = append(n.Picture, Picture{
			Path:     img.SourcePath,
			Filename: img.Filename,
			Fields:   img.TargetFields,
		})
	}
	return n
}

// AddNote adds a note and returns its id
func (c *Client) AddNote(ctx context.Context, note Note) (int64, error) {
	var id int64
	if err := c.Invoke(ctx, "addNote", map[string]Note{"note": note}, &id); err != nil {
		return 0, err
	}
	return id, nil
}
