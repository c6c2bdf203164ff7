package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"roast_agent/internal/app/port"
	domain "roast_agent/internal/domain/entity"
	"roast_agent/internal/entity"
	"roast_agent/internal/pkg/metrics"
)

// RouteRPCLogs sends the RPC library's internal logs to h.
func RouteRPCLogs(h slog.Handler) {
	gethlog.SetDefault(gethlog.NewLogger(h))
}

// SuiClient implements port.SuiClient over Sui JSON-RPC.
type SuiClient struct {
	rpcClient   *rpc.Client
	netDef      domain.NetworkDefinition
	limiter     *rate.Limiter
	callTimeout time.Duration
	logger      port.Logger
}

// NewSuiClient dials the network's RPC URL. For HTTP endpoints no connection
// is made until the first call.
func NewSuiClient(
	ctx context.Context,
	netDef domain.NetworkDefinition,
	httpClient *http.Client,
	limiter *rate.Limiter,
	callTimeout time.Duration,
	log port.Logger,
) (*SuiClient, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	rpcClient, err := rpc.DialOptions(ctx, netDef.RPCURL, rpc.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", netDef.RPCURL, err)
	}
	return &SuiClient{
		rpcClient:   rpcClient,
		netDef:      netDef,
		limiter:     limiter,
		callTimeout: callTimeout,
		logger:      log,
	}, nil
}

// FetchWalletData runs the balance, owned-objects and transactions queries
// concurrently. The first failure cancels the others and no partial data is
// returned.
func (c *SuiClient) FetchWalletData(ctx context.Context, address string) (*domain.WalletData, error) {
	var (
		balance entity.SuiBalance
		objects entity.SuiOwnedObjectsPage
		txs     entity.SuiTransactionBlocksPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.call(gctx, domain.BalanceQuery, &balance, address, c.netDef.CoinType)
	})
	g.Go(func() error {
		query := entity.SuiObjectQuery{Options: entity.SuiObjectQueryOptions{
			ShowType:    true,
			ShowContent: true,
			ShowDisplay: true,
		}}
		return c.call(gctx, domain.OwnedObjectsQuery, &objects, address, query, nil, domain.OwnedObjectsPageSize)
	})
	g.Go(func() error {
		query := entity.SuiTransactionQuery{
			Filter: map[string]string{"FromAddress": address},
			Options: entity.SuiTransactionQueryOptions{
				ShowInput:          true,
				ShowEffects:        true,
				ShowBalanceChanges: true,
			},
		}
		return c.call(gctx, domain.TransactionsQuery, &txs, query, nil, domain.TransactionPageSize, true)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := NormalizeWalletData(address, c.netDef.Identifier, &balance, &objects, &txs)
	c.logger.Debug("Fetched wallet data",
		"network", c.netDef.Identifier,
		"address", address,
		"nfts", len(data.NFTs),
		"transactions", len(data.Transactions),
	)
	return data, nil
}

func (c *SuiClient) call(ctx context.Context, kind domain.WalletQueryKind, result any, args ...any) error {
	method := kind.Method()

	if err := c.limiter.Wait(ctx); err != nil {
		c.observe(method, "timeout")
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		// Wait fails early when the deadline would pass before a token frees up.
		return fmt.Errorf("%w: %s: %w", domain.ErrFetchTimeout, method, err)
	}

	callCtx := ctx
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	err := c.rpcClient.CallContext(callCtx, result, method, args...)
	switch {
	case err == nil:
		c.observe(method, "ok")
		return nil
	case isTimeout(callCtx, err):
		c.observe(method, "timeout")
		return fmt.Errorf("%w: %s: %w", domain.ErrFetchTimeout, method, err)
	case errors.Is(err, context.Canceled):
		c.observe(method, "canceled")
		return fmt.Errorf("%w: %s: %w", domain.ErrWalletFetch, method, err)
	default:
		c.observe(method, "error")
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			c.logger.Warn("Sui RPC returned an error", "network", c.netDef.Identifier, "method", method, "code", rpcErr.ErrorCode(), "error", rpcErr.Error())
		}
		return fmt.Errorf("%w: %s: %w", domain.ErrWalletFetch, method, err)
	}
}

func (c *SuiClient) observe(method, status string) {
	metrics.SuiRPCCallsTotal.WithLabelValues(c.netDef.Identifier, method, status).Inc()
}

// isTimeout reports a deadline expiry of ctx or a transport-level timeout.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// Definition returns the network definition for this client.
func (c *SuiClient) Definition() domain.NetworkDefinition {
	return c.netDef
}

// Close releases idle connections held by the RPC client.
func (c *SuiClient) Close() {
	c.rpcClient.Close()
}

var _ port.SuiClient = (*SuiClient)(nil)
