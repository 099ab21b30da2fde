package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elevatedliving/storefront/internal/domain"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	DefaultModel             = "gemini-3-flash-preview"
	defaultTimeout           = 30 * time.Second
	defaultRequestsPerMinute = 60
	defaultBurst             = 10
)

// Options configures the Gemini client
type Options struct {
	APIKey            string
	Model             string
	BaseURL           string // empty means the SDK default endpoint
	Timeout           time.Duration
	RequestsPerMinute int
	Burst             int
}

// Client handles communication with the Gemini text-generation API
type Client struct {
	genai       *genai.Client
	model       string
	rateLimiter *rate.Limiter
}

var _ domain.TextGenerator = (*Client)(nil)

// NewClient creates a new Gemini client. An empty API key is not an error:
// the client is still returned and every Generate call reports
// domain.ErrMissingCredential without touching the network.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = defaultRequestsPerMinute
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}

	c := &Client{
		model:       opts.Model,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), opts.Burst),
	}

	if opts.APIKey == "" {
		return c, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: opts.Timeout},
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.genai = client

	return c, nil
}

// Configured reports whether an API key was supplied
func (c *Client) Configured() bool {
	return c.genai != nil
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// Generate sends one generateContent request and returns the complete text
// of the first candidate. It never retries.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if c.genai == nil {
		return "", domain.ErrMissingCredential
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %v", domain.ErrRemoteService, err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), config)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteService, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrRemoteService, domain.ErrEmptyResponse)
	}

	return text, nil
}
