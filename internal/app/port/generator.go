package port

import "context"

// RoastGenerator turns a formatted wallet summary into roast text.
type RoastGenerator interface {
	// CheckConfig reports a configuration error (e.g. a missing API credential)
	// without making any network call.
	CheckConfig() error

	// GenerateRoast issues one generation call and returns the text verbatim.
	GenerateRoast(ctx context.Context, walletSummary string) (string, error)
}
