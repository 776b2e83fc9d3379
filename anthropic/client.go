package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	messagesPath   = "/v1/messages"
	apiVersion     = "2023-06-01"

	defaultMaxTokens = 1024

	// chunkReadTimeout bounds the wait for the next stream chunk. The API has
	// no overall response deadline, so a stalled connection would otherwise
	// hang the session forever.
	chunkReadTimeout = 60 * time.Second
)

// Known Claude model identifiers.
const (
	ModelHaiku  = "claude-haiku-4-5-20251001" // fastest / cheapest
	ModelSonnet = "claude-sonnet-4-6"         // balanced (default)
	ModelOpus   = "claude-opus-4-6"           // most powerful
)

// KnownModels lists the curated models in UI order. Anthropic has no list
// endpoint, so this is maintained by hand.
var KnownModels = []string{ModelHaiku, ModelSonnet, ModelOpus}

const DefaultModel = ModelSonnet

// Client is a streaming client for the Anthropic Messages API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	maxTokens  int
}

// NewClient creates a client for the given base URL and model, falling back
// to the API default and claude-sonnet when empty.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		model:      model,
		maxTokens:  defaultMaxTokens,
	}
}

func (c *Client) Model() string { return c.model }

func (c *Client) SetModel(model string) { c.model = model }

// Request is one streaming chat turn: the transcript so far, the assembled
// system prompt (omitted from the wire when empty) and the tool catalog.
type Request struct {
	Messages []MessageParam
	System   string
	Tools    []Tool
}

// APIError is a non-200 response from the API.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d)", e.Status)
}

// EncodingError is a local failure to serialize the outbound body. It is
// reported before any network activity happens.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode request: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Stream posts req and feeds the response through the SSE decoder, invoking
// emit for every protocol event in arrival order. It returns an *APIError on
// a non-200 status, an *EncodingError if the body cannot be serialized, and
// the transport error otherwise. Reading is bounded per chunk; a stall
// surfaces as a transport error.
func (c *Client) Stream(ctx context.Context, apiKey string, req Request, emit func(Event) error) error {
	body := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Stream:    true,
		Messages:  req.Messages,
		System:    req.System,
		Tools:     req.Tools,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &EncodingError{Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(payload))
	if err != nil {
		return &EncodingError{Err: err}
	}
	httpReq.Header.Set("x-api-key", apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode}
	}

	// Cancel the request if the server goes quiet mid-stream.
	watchdog := time.AfterFunc(chunkReadTimeout, cancel)
	defer watchdog.Stop()

	return DecodeStream(&chunkTimeoutReader{r: resp.Body, timer: watchdog}, emit)
}

// chunkTimeoutReader re-arms the stall watchdog on every read.
type chunkTimeoutReader struct {
	r     io.Reader
	timer *time.Timer
}

func (c *chunkTimeoutReader) Read(p []byte) (int, error) {
	c.timer.Reset(chunkReadTimeout)
	return c.r.Read(p)
}
