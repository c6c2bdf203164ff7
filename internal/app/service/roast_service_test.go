package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"roast_agent/internal/app/port"
	"roast_agent/internal/domain/entity"
	"roast_agent/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const validAddress = "0xabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcd"

type stubNetworks struct{}

var mainnet = entity.NetworkDefinition{Identifier: "mainnet", Name: "Sui Mainnet", CoinType: entity.SuiCoinType}

func (stubNetworks) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	return []entity.NetworkDefinition{mainnet, {Identifier: "testnet"}}
}

func (stubNetworks) GetNetworkDefinitionByName(id string) (entity.NetworkDefinition, bool) {
	switch strings.ToLower(id) {
	case "mainnet":
		return mainnet, true
	case "testnet":
		return entity.NetworkDefinition{Identifier: "testnet"}, true
	}
	return entity.NetworkDefinition{}, false
}

func (stubNetworks) DefaultNetwork() entity.NetworkDefinition { return mainnet }

type stubFetcher struct {
	calls atomic.Int32
	fn    func(ctx context.Context, network, address string) (*entity.WalletData, error)
}

func (f *stubFetcher) FetchWalletData(ctx context.Context, network, address string) (*entity.WalletData, error) {
	f.calls.Add(1)
	return f.fn(ctx, network, address)
}

type stubGenerator struct {
	calls     atomic.Int32
	configErr error
	summaries []string
	fn        func(ctx context.Context, summary string) (string, error)
}

func (g *stubGenerator) CheckConfig() error { return g.configErr }

func (g *stubGenerator) GenerateRoast(ctx context.Context, summary string) (string, error) {
	g.calls.Add(1)
	g.summaries = append(g.summaries, summary)
	return g.fn(ctx, summary)
}

func fiveSuiWallet(_ context.Context, network, address string) (*entity.WalletData, error) {
	return &entity.WalletData{
		Address: address,
		Network: network,
		Balance: "5000000000",
		Transactions: []entity.Transaction{
			{Type: "Transfer"}, {Type: "Transfer"}, {Type: "Transfer"},
		},
	}, nil
}

func niceWallet(context.Context, string) (string, error) { return "Nice wallet!", nil }

func blockUntilDone[T any](ctx context.Context) (T, error) {
	var zero T
	<-ctx.Done()
	return zero, ctx.Err()
}

func newTestService(f port.WalletDataFetcher, g port.RoastGenerator, log port.Logger) *RoastServiceImpl {
	if log == nil {
		log = logger.NewAdapter(zap.NewNop())
	}
	s := NewRoastService(stubNetworks{}, f, g, log, time.Second, time.Second)
	s.now = func() time.Time { return fixedNow }
	return s
}

func roastKind(t *testing.T, err error) entity.ErrorKind {
	t.Helper()
	var re *entity.RoastError
	require.ErrorAs(t, err, &re)
	return re.Kind
}

func TestRoast_EndToEnd(t *testing.T) {
	f := &stubFetcher{fn: fiveSuiWallet}
	g := &stubGenerator{fn: niceWallet}
	s := newTestService(f, g, nil)

	res, err := s.Roast(context.Background(), entity.RoastRequest{Address: "  " + validAddress + "\n"})
	require.NoError(t, err)

	assert.Equal(t, "Nice wallet!", res.Roast)
	assert.Equal(t, validAddress, res.Address)
	assert.Equal(t, "mainnet", res.Network)
	assert.Equal(t, fixedNow, res.GeneratedAt)
	require.Len(t, g.summaries, 1)
	assert.Contains(t, g.summaries[0], "- Current Balance: 5.00 SUI\n")
	assert.Contains(t, g.summaries[0], "- Transaction Patterns: Transfer: 3 times\n")
}

func TestRoast_InvalidAddressMakesNoCalls(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"0x123",
		"abcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		"0x" + strings.Repeat("g", 64),
		"0x" + strings.Repeat("a", 65),
		"0X" + strings.Repeat("a", 64),
		"0x" + strings.Repeat("a", 63) + " ",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			f := &stubFetcher{fn: fiveSuiWallet}
			g := &stubGenerator{fn: niceWallet}
			s := newTestService(f, g, nil)

			res, err := s.Roast(context.Background(), entity.RoastRequest{Address: in})

			assert.Nil(t, res)
			assert.Equal(t, entity.KindValidation, roastKind(t, err))
			assert.ErrorIs(t, err, entity.ErrInvalidAddress)
			assert.Zero(t, f.calls.Load())
			assert.Zero(t, g.calls.Load())
		})
	}
}

func TestRoast_UnknownNetwork(t *testing.T) {
	f := &stubFetcher{fn: fiveSuiWallet}
	s := newTestService(f, &stubGenerator{fn: niceWallet}, nil)

	_, err := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress, Network: "localnet"})

	assert.Equal(t, entity.KindValidation, roastKind(t, err))
	assert.ErrorIs(t, err, entity.ErrUnknownNetwork)
	assert.Zero(t, f.calls.Load())
}

func TestRoast_SelectsRequestedNetwork(t *testing.T) {
	var gotNetwork string
	f := &stubFetcher{fn: func(ctx context.Context, network, address string) (*entity.WalletData, error) {
		gotNetwork = network
		return fiveSuiWallet(ctx, network, address)
	}}
	s := newTestService(f, &stubGenerator{fn: niceWallet}, nil)

	res, err := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress, Network: "TestNet"})
	require.NoError(t, err)
	assert.Equal(t, "testnet", gotNetwork)
	assert.Equal(t, "testnet", res.Network)
}

func TestRoast_MissingCredential(t *testing.T) {
	f := &stubFetcher{fn: fiveSuiWallet}
	g := &stubGenerator{fn: niceWallet, configErr: entity.ErrMissingCredential}
	s := newTestService(f, g, nil)

	_, err := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress})

	assert.Equal(t, entity.KindConfiguration, roastKind(t, err))
	assert.Zero(t, f.calls.Load())
	assert.Zero(t, g.calls.Load())
}

func TestRoast_FetchFailures(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context, string, string) (*entity.WalletData, error)
		want entity.ErrorKind
	}{
		{
			name: "plain error is a fetch error",
			fn: func(context.Context, string, string) (*entity.WalletData, error) {
				return nil, errors.New("connection refused")
			},
			want: entity.KindFetch,
		},
		{
			name: "classified fetch error",
			fn: func(context.Context, string, string) (*entity.WalletData, error) {
				return nil, entity.ErrWalletFetch
			},
			want: entity.KindFetch,
		},
		{
			name: "nil data",
			fn: func(context.Context, string, string) (*entity.WalletData, error) {
				return nil, nil
			},
			want: entity.KindFetch,
		},
		{
			name: "never resolves before the deadline",
			fn:   func(ctx context.Context, _, _ string) (*entity.WalletData, error) { return blockUntilDone[*entity.WalletData](ctx) },
			want: entity.KindFetchTimeout,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &stubGenerator{fn: niceWallet}
			s := newTestService(&stubFetcher{fn: tt.fn}, g, nil)
			s.fetchTimeout = 30 * time.Millisecond

			start := time.Now()
			res, err := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress})

			assert.Nil(t, res)
			assert.Equal(t, tt.want, roastKind(t, err))
			assert.Zero(t, g.calls.Load())
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestRoast_GenerationFailures(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context, string) (string, error)
		want entity.ErrorKind
	}{
		{
			name: "api failure",
			fn:   func(context.Context, string) (string, error) { return "", entity.ErrGeneration },
			want: entity.KindGeneration,
		},
		{
			name: "unclassified error",
			fn:   func(context.Context, string) (string, error) { return "", errors.New("boom") },
			want: entity.KindGeneration,
		},
		{
			name: "no choices",
			fn:   func(context.Context, string) (string, error) { return "", entity.ErrEmptyGeneration },
			want: entity.KindEmptyGeneration,
		},
		{
			name: "blank text",
			fn:   func(context.Context, string) (string, error) { return " \n ", nil },
			want: entity.KindEmptyGeneration,
		},
		{
			name: "slow generator",
			fn:   func(ctx context.Context, _ string) (string, error) { return blockUntilDone[string](ctx) },
			want: entity.KindGenerationTimeout,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(&stubFetcher{fn: fiveSuiWallet}, &stubGenerator{fn: tt.fn}, nil)
			s.generateTimeout = 30 * time.Millisecond

			res, err := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress})

			assert.Nil(t, res)
			assert.Equal(t, tt.want, roastKind(t, err))
		})
	}
}

func TestRoast_CallerCancellation(t *testing.T) {
	f := &stubFetcher{fn: func(ctx context.Context, _, _ string) (*entity.WalletData, error) {
		return blockUntilDone[*entity.WalletData](ctx)
	}}
	s := newTestService(f, &stubGenerator{fn: niceWallet}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := s.Roast(ctx, entity.RoastRequest{Address: validAddress})
	assert.Equal(t, entity.KindFetch, roastKind(t, err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoast_LogsCauseBeforeTranslating(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cause := errors.New("node said no")
	f := &stubFetcher{fn: func(context.Context, string, string) (*entity.WalletData, error) { return nil, cause }}
	s := newTestService(f, &stubGenerator{fn: niceWallet}, logger.NewAdapter(zap.New(core)))

	_, err := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress})

	var re *entity.RoastError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, entity.MsgFetch, re.UserMessage())
	assert.NotContains(t, re.UserMessage(), "node said no")

	entries := logs.FilterMessage("Roast failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "fetch", fields["kind"])
	assert.Contains(t, fields["error"], "node said no")
}

func TestRoast_Idempotent(t *testing.T) {
	s := newTestService(&stubFetcher{fn: fiveSuiWallet}, &stubGenerator{fn: niceWallet}, nil)
	first, err1 := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress})
	second, err2 := s.Roast(context.Background(), entity.RoastRequest{Address: validAddress})
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)

	failing := newTestService(&stubFetcher{fn: fiveSuiWallet}, &stubGenerator{fn: func(context.Context, string) (string, error) {
		return "", entity.ErrEmptyGeneration
	}}, nil)
	_, errA := failing.Roast(context.Background(), entity.RoastRequest{Address: validAddress})
	_, errB := failing.Roast(context.Background(), entity.RoastRequest{Address: validAddress})
	assert.Equal(t, roastKind(t, errA), roastKind(t, errB))
}
