package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"roast_agent/internal/app/port"
	"roast_agent/internal/config"
	domain "roast_agent/internal/domain/entity"
	"roast_agent/internal/entity"
	"roast_agent/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const clientName = "roast_agent"

var (
	errMissingHost    = errors.New("missing host")
	errRequestAborted = errors.New("request aborted")
)

// connTracker records the connections dialed for one request and closes them
// when the request is abandoned.
type connTracker struct {
	mu      sync.Mutex
	conns   []net.Conn
	aborted bool
}

func (t *connTracker) wrap(dial fasthttp.DialFunc) fasthttp.DialFunc {
	return func(addr string) (net.Conn, error) {
		conn, err := dial(addr)
		if err != nil {
			return nil, err
		}
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.aborted {
			_ = conn.Close()
			return nil, errRequestAborted
		}
		t.conns = append(t.conns, conn)
		return conn, nil
	}
}

func (t *connTracker) abort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.aborted = true
	for _, conn := range t.conns {
		_ = conn.Close()
	}
	t.conns = nil
}

// OpenRouterClient implements port.RoastGenerator against the OpenRouter
// chat completions API.
type OpenRouterClient struct {
	dial        fasthttp.DialFunc
	baseURL     string
	apiKey      string
	model       string
	appURL      string
	appTitle    string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      *zap.Logger
}

// NewOpenRouterClient creates a new OpenRouterClient. A missing API key is
// accepted here and reported by CheckConfig. timeout bounds calls whose ctx
// carries no earlier deadline.
func NewOpenRouterClient(cfg config.OpenRouterConfig, timeout time.Duration, logger *zap.Logger) *OpenRouterClient {
	if timeout <= 0 {
		timeout = config.DefaultGenerateTimeoutMs * time.Millisecond
	}
	return &OpenRouterClient{
		dial:        fasthttp.Dial,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		appURL:      cfg.AppURL,
		appTitle:    cfg.AppTitle,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		logger:      logger.Named("OpenRouterClient"),
	}
}

// CheckConfig reports a missing API credential without any network call.
func (c *OpenRouterClient) CheckConfig() error {
	if c.apiKey == "" {
		return domain.ErrMissingCredential
	}
	return nil
}

type completionResult struct {
	status int
	body   []byte
	err    error
}

// GenerateRoast sends the persona and wallet summary and returns the first
// completion's text verbatim.
func (c *OpenRouterClient) GenerateRoast(ctx context.Context, walletSummary string) (string, error) {
	if err := c.CheckConfig(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		c.observe("timeout")
		return "", contextError(err)
	}

	body, err := json.Marshal(entity.ChatCompletionRequest{
		Model: c.model,
		Messages: []entity.ChatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: UserPrompt(walletSummary)},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %w", domain.ErrGeneration, err)
	}

	requestURL := c.baseURL + "/chat/completions"
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.logger.Debug("Requesting roast from OpenRouter", zap.String("url", requestURL), zap.String("model", c.model))

	tracker := &connTracker{}
	hostClient, err := c.newHostClient(tracker)
	if err != nil {
		c.observe("error")
		c.logger.Error("Invalid OpenRouter base URL", zap.String("baseURL", c.baseURL), zap.Error(err))
		return "", fmt.Errorf("%w: invalid base URL %q: %w", domain.ErrGeneration, c.baseURL, err)
	}

	// The goroutine owns req and resp; done is buffered so it never blocks
	// after the caller gave up.
	done := make(chan completionResult, 1)
	go func() {
		req := fasthttp.AcquireRequest()
		defer fasthttp.ReleaseRequest(req)
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(requestURL)
		req.Header.SetMethod(fasthttp.MethodPost)
		req.Header.SetContentType("application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("HTTP-Referer", c.appURL)
		req.Header.Set("X-Title", c.appTitle)
		req.SetConnectionClose()
		req.SetBodyRaw(body)

		out := completionResult{err: hostClient.DoDeadline(req, resp, deadline)}
		if out.err == nil {
			out.status = resp.StatusCode()
			out.body = append([]byte(nil), resp.Body()...)
		}
		done <- out
	}()

	var res completionResult
	select {
	case <-ctx.Done():
		tracker.abort()
		c.observe("timeout")
		c.logger.Warn("Roast generation abandoned", zap.Error(ctx.Err()))
		return "", contextError(ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		if isTimeoutErr(res.err) {
			c.observe("timeout")
			c.logger.Error("OpenRouter request timed out", zap.String("url", requestURL), zap.Error(res.err))
			return "", fmt.Errorf("%w: %w", domain.ErrGenerationTimeout, res.err)
		}
		c.observe("error")
		c.logger.Error("Failed to execute request to OpenRouter", zap.String("url", requestURL), zap.Error(res.err))
		return "", fmt.Errorf("%w: request to %s: %w", domain.ErrGeneration, requestURL, res.err)
	}

	return c.parseCompletion(res)
}

func (c *OpenRouterClient) parseCompletion(res completionResult) (string, error) {
	var completion entity.ChatCompletionResponse
	decodeErr := json.Unmarshal(res.body, &completion)

	if res.status < 200 || res.status >= 300 {
		c.observe("error")
		msg := ""
		if decodeErr == nil && completion.Error != nil {
			msg = completion.Error.Message
		}
		c.logger.Error("OpenRouter API request failed",
			zap.Int("statusCode", res.status),
			zap.String("apiError", msg),
			zap.ByteString("responseBody", res.body),
		)
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrGeneration, res.status, msg)
	}

	if decodeErr != nil {
		c.observe("empty")
		c.logger.Error("Failed to unmarshal OpenRouter response", zap.ByteString("responseBody", res.body), zap.Error(decodeErr))
		return "", fmt.Errorf("%w: malformed response: %w", domain.ErrEmptyGeneration, decodeErr)
	}
	if completion.Error != nil {
		c.observe("error")
		c.logger.Error("OpenRouter returned an error envelope", zap.Int("code", completion.Error.Code), zap.String("message", completion.Error.Message))
		return "", fmt.Errorf("%w: %s", domain.ErrGeneration, completion.Error.Message)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message == nil ||
		strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		c.observe("empty")
		c.logger.Warn("OpenRouter returned no roast", zap.String("id", completion.ID), zap.Int("choices", len(completion.Choices)))
		return "", domain.ErrEmptyGeneration
	}

	c.observe("ok")
	if completion.Usage != nil {
		c.logger.Debug("Roast generated",
			zap.String("id", completion.ID),
			zap.Int("promptTokens", completion.Usage.PromptTokens),
			zap.Int("completionTokens", completion.Usage.CompletionTokens),
		)
	}
	return completion.Choices[0].Message.Content, nil
}

// newHostClient returns a single-use client whose connections are dialed
// through tracker, so an abandoned request can be torn down.
func (c *OpenRouterClient) newHostClient(tracker *connTracker) (*fasthttp.HostClient, error) {
	uri := fasthttp.AcquireURI()
	defer fasthttp.ReleaseURI(uri)
	if err := uri.Parse(nil, []byte(c.baseURL)); err != nil {
		return nil, err
	}
	host := string(uri.Host())
	if host == "" {
		return nil, errMissingHost
	}
	isTLS := string(uri.Scheme()) == "https"
	return &fasthttp.HostClient{
		Addr:     fasthttp.AddMissingPort(host, isTLS),
		Name:     clientName,
		IsTLS:    isTLS,
		MaxConns: 1,
		Dial:     tracker.wrap(c.dial),
	}, nil
}

func (c *OpenRouterClient) observe(status string) {
	metrics.GenerationCallsTotal.WithLabelValues(c.model, status).Inc()
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrGeneration, err)
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

var _ port.RoastGenerator = (*OpenRouterClient)(nil)
