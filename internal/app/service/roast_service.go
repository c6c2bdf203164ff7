package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roast_agent/internal/app/port"
	"roast_agent/internal/domain/entity"
	"roast_agent/internal/pkg/metrics"
	"roast_agent/internal/pkg/utils"
)

// RoastServiceImpl implements port.RoastService.
type RoastServiceImpl struct {
	networkProvider port.NetworkDefinitionProvider
	fetcher         port.WalletDataFetcher
	generator       port.RoastGenerator
	logger          port.Logger
	fetchTimeout    time.Duration
	generateTimeout time.Duration
	now             func() time.Time
}

// NewRoastService creates a new instance of RoastServiceImpl.
func NewRoastService(
	np port.NetworkDefinitionProvider,
	fetcher port.WalletDataFetcher,
	generator port.RoastGenerator,
	l port.Logger,
	fetchTimeout time.Duration,
	generateTimeout time.Duration,
) *RoastServiceImpl {
	return &RoastServiceImpl{
		networkProvider: np,
		fetcher:         fetcher,
		generator:       generator,
		logger:          l,
		fetchTimeout:    fetchTimeout,
		generateTimeout: generateTimeout,
		now:             time.Now,
	}
}

// Roast validates the request, fetches wallet data, formats it and asks the
// generator for a roast. Every failure is logged with its cause and returned
// as a *entity.RoastError.
func (s *RoastServiceImpl) Roast(ctx context.Context, req entity.RoastRequest) (*entity.RoastResult, error) {
	start := time.Now()
	address := strings.TrimSpace(req.Address)

	result, err := s.roast(ctx, address, req.Network)
	if err != nil {
		roastErr := entity.NewRoastError(address, err)
		s.logger.Error("Roast failed",
			"address", address,
			"network", req.Network,
			"kind", string(roastErr.Kind),
			"error", err,
		)
		metrics.RoastRequestsTotal.WithLabelValues(string(roastErr.Kind)).Inc()
		return nil, roastErr
	}

	metrics.RoastRequestsTotal.WithLabelValues("success").Inc()
	s.logger.Info("Roast generated",
		"address", address,
		"network", result.Network,
		"length", len(result.Roast),
		"duration", time.Since(start).String(),
	)
	return result, nil
}

func (s *RoastServiceImpl) roast(ctx context.Context, address, network string) (*entity.RoastResult, error) {
	if !utils.IsValidSuiAddress(address) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidAddress, address)
	}

	netDef, err := s.resolveNetwork(network)
	if err != nil {
		return nil, err
	}

	if err := s.generator.CheckConfig(); err != nil {
		if !errors.Is(err, entity.ErrMissingCredential) {
			err = fmt.Errorf("%w: %w", entity.ErrMissingCredential, err)
		}
		return nil, err
	}

	fetchStart := time.Now()
	data, err := callWithTimeout(ctx, s.fetchTimeout, entity.ErrWalletFetch, entity.ErrFetchTimeout,
		func(ctx context.Context) (*entity.WalletData, error) {
			return s.fetcher.FetchWalletData(ctx, netDef.Identifier, address)
		})
	metrics.StageDuration.WithLabelValues("fetch").Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: fetcher returned no data", entity.ErrWalletFetch)
	}

	summary := FormatWalletSummary(*data, s.now())
	s.logger.Debug("Formatted wallet summary", "address", address, "summary", summary)

	generateStart := time.Now()
	roast, err := callWithTimeout(ctx, s.generateTimeout, entity.ErrGeneration, entity.ErrGenerationTimeout,
		func(ctx context.Context) (string, error) {
			return s.generator.GenerateRoast(ctx, summary)
		})
	metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(generateStart).Seconds())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(roast) == "" {
		return nil, entity.ErrEmptyGeneration
	}

	return &entity.RoastResult{
		Address:     address,
		Network:     netDef.Identifier,
		Roast:       roast,
		GeneratedAt: s.now(),
	}, nil
}

func (s *RoastServiceImpl) resolveNetwork(network string) (entity.NetworkDefinition, error) {
	if strings.TrimSpace(network) == "" {
		return s.networkProvider.DefaultNetwork(), nil
	}
	netDef, ok := s.networkProvider.GetNetworkDefinitionByName(network)
	if !ok {
		return entity.NetworkDefinition{}, fmt.Errorf("%w: %q", entity.ErrUnknownNetwork, network)
	}
	return netDef, nil
}

// callWithTimeout runs fn under a deadline and returns as soon as the deadline
// passes, even if fn ignores its context. Unclassified errors from fn are
// wrapped with stageErr; deadline expiry is reported as timeoutErr.
func callWithTimeout[T any](
	ctx context.Context,
	timeout time.Duration,
	stageErr, timeoutErr error,
	fn func(context.Context) (T, error),
) (T, error) {
	var zero T
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err == nil {
			return r.value, nil
		}
		switch {
		case entity.KindOf(r.err) != entity.KindUnknown:
			return zero, r.err
		case errors.Is(r.err, context.DeadlineExceeded):
			return zero, fmt.Errorf("%w: %w", timeoutErr, r.err)
		default:
			return zero, fmt.Errorf("%w: %w", stageErr, r.err)
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w: %w", timeoutErr, ctx.Err())
		}
		return zero, fmt.Errorf("%w: %w", stageErr, ctx.Err())
	}
}

var _ port.RoastService = (*RoastServiceImpl)(nil)
