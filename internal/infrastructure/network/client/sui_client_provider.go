package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"roast_agent/internal/app/port"
	"roast_agent/internal/config"
	domain "roast_agent/internal/domain/entity"
)

const (
	defaultProviderConnectionTimeout = 10 * time.Second
)

// SuiClientProvider implements port.SuiClientProvider. Dialed clients are kept
// per network and closed after sitting idle for the configured TTL. Only
// connections are cached, never query results.
type SuiClientProvider struct {
	clients           *cache.Cache
	mu                sync.Mutex
	httpClient        *http.Client
	rateLimit         rate.Limit
	burst             int
	callTimeout       time.Duration
	connectionTimeout time.Duration
	logger            port.Logger
}

// NewSuiClientProvider creates a new SuiClientProvider.
func NewSuiClientProvider(cfg *config.Config, log port.Logger) *SuiClientProvider {
	idle := cfg.ClientIdleTTL()
	p := &SuiClientProvider{
		clients: cache.New(idle, idle/2),
		httpClient: &http.Client{Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		}},
		rateLimit:         rate.Limit(cfg.Sui.RateLimit),
		burst:             cfg.Sui.BurstLimit,
		callTimeout:       cfg.SuiRequestTimeout(),
		connectionTimeout: defaultProviderConnectionTimeout,
		logger:            log,
	}
	p.clients.OnEvicted(func(key string, v any) {
		if c, ok := v.(port.SuiClient); ok {
			p.logger.Info("Closing idle Sui client", "key", key)
			c.Close()
		}
	})
	return p
}

// GetClient retrieves a Sui client for the given network definition, dialing
// one on first use.
func (p *SuiClientProvider) GetClient(netDef domain.NetworkDefinition) (port.SuiClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := clientKey(netDef)
	if cached, ok := p.clients.Get(key); ok {
		// Refresh the idle deadline.
		p.clients.Set(key, cached, cache.DefaultExpiration)
		p.logger.Debug("Returning cached Sui client", "network", netDef.Identifier)
		return cached.(port.SuiClient), nil
	}

	p.logger.Info("Creating new Sui client", "network", netDef.Identifier, "rpc_url", netDef.RPCURL)
	ctx, cancel := context.WithTimeout(context.Background(), p.connectionTimeout)
	defer cancel()

	limiter := rate.NewLimiter(p.rateLimit, p.burst)
	newClient, err := NewSuiClient(ctx, netDef, p.httpClient, limiter, p.callTimeout, p.logger)
	if err != nil {
		p.logger.Error("Failed to create Sui client", "network", netDef.Identifier, "error", err)
		return nil, fmt.Errorf("failed to create Sui client for %s: %w", netDef.Identifier, err)
	}

	p.clients.Set(key, newClient, cache.DefaultExpiration)
	return newClient, nil
}

// Close closes every cached client, including expired ones the janitor has
// not evicted yet.
func (p *SuiClientProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients.DeleteExpired()
	for key := range p.clients.Items() {
		// Delete runs OnEvicted, which closes the client.
		p.clients.Delete(key)
	}
}

func clientKey(netDef domain.NetworkDefinition) string {
	return netDef.Identifier + "|" + netDef.RPCURL
}

var _ port.SuiClientProvider = (*SuiClientProvider)(nil)
