package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"roast_agent/internal/app/port"
	"roast_agent/internal/app/presenter"
	"roast_agent/internal/app/provider"
	"roast_agent/internal/domain/entity"
)

const defaultRevealDelay = 400 * time.Millisecond

var errSomeRoastsFailed = errors.New("some wallets could not be roasted")

type roastOptions struct {
	file        string
	network     string
	revealDelay time.Duration
	logLevel    string
}

func newRoastCmd(configPath *string) *cobra.Command {
	opts := roastOptions{}

	cmd := &cobra.Command{
		Use:   "roast [address...]",
		Short: "Roast one or more wallets from the terminal",
		Long: `Roast every address given as an argument and every address listed in --file
(one per line, '#' starts a comment). Paragraphs are revealed one at a time,
followed by a share link.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoast(cmd.Context(), *configPath, args, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "file with one wallet address per line")
	cmd.Flags().StringVarP(&opts.network, "network", "n", "", "network to query (default from config)")
	cmd.Flags().DurationVar(&opts.revealDelay, "reveal-delay", defaultRevealDelay, "pause between revealed paragraphs")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level for the terminal run")
	return cmd
}

func runRoast(ctx context.Context, configPath string, args []string, opts roastOptions, out io.Writer) error {
	app, err := newApplication(configPath, opts.logLevel)
	if err != nil {
		return err
	}
	defer app.Close()

	addresses, err := provider.NewAddressProvider(args, opts.file, app.logger).GetAddresses()
	if err != nil {
		return fmt.Errorf("failed to load addresses: %w", err)
	}
	if len(addresses) == 0 {
		return errors.New("no wallet addresses given; pass them as arguments or with --file")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := batchRoast{
		service:     app.roastService,
		network:     opts.network,
		appURL:      app.cfg.OpenRouter.AppURL,
		revealDelay: opts.revealDelay,
		out:         out,
	}
	return run.roastAll(ctx, addresses)
}

// batchRoast roasts addresses one after another and prints each result.
type batchRoast struct {
	service     port.RoastService
	network     string
	appURL      string
	revealDelay time.Duration
	out         io.Writer
}

// roastAll keeps going after a failed address and reports
// errSomeRoastsFailed once every address was tried.
func (b batchRoast) roastAll(ctx context.Context, addresses []string) error {
	header := color.New(color.FgHiYellow, color.Bold)
	failure := color.New(color.FgRed)
	link := color.New(color.FgCyan)

	failed := 0
	for i, address := range addresses {
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			fmt.Fprintln(b.out)
		}
		header.Fprintf(b.out, "🔥 %s\n", address)

		result, err := b.service.Roast(ctx, entity.RoastRequest{Address: address, Network: b.network})
		if err != nil {
			failed++
			failure.Fprintln(b.out, userMessage(err))
			continue
		}

		for j, paragraph := range presenter.Paragraphs(result.Roast) {
			if j > 0 && !sleepCtx(ctx, b.revealDelay) {
				break
			}
			fmt.Fprintln(b.out, paragraph)
		}
		link.Fprintf(b.out, "Share on X: %s\n", presenter.ShareURL(b.appURL, result.Roast))
	}

	if failed > 0 {
		failure.Fprintf(b.out, "\n%d of %d wallets failed\n", failed, len(addresses))
		return errSomeRoastsFailed
	}
	return ctx.Err()
}

func userMessage(err error) string {
	var roastErr *entity.RoastError
	if errors.As(err, &roastErr) {
		return roastErr.UserMessage()
	}
	return entity.MessageFor(entity.KindOf(err))
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
