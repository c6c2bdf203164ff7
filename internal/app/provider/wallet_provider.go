package provider

import (
	"strings"

	"roast_agent/internal/app/port"
	"roast_agent/internal/infrastructure/walletloader"
)

type addressProviderImpl struct {
	args           []string
	walletFilePath string
	logger         port.Logger
}

// NewAddressProvider creates an AddressProvider returning the given addresses
// followed by those in walletFilePath (when set), without duplicates.
// Addresses given directly are passed through unvalidated so the roast
// pipeline can report them.
func NewAddressProvider(args []string, walletFilePath string, logger port.Logger) port.AddressProvider {
	return &addressProviderImpl{args: args, walletFilePath: walletFilePath, logger: logger}
}

// GetAddresses merges addresses from arguments and the configured file.
func (p *addressProviderImpl) GetAddresses() ([]string, error) {
	seen := make(map[string]struct{})
	addresses := make([]string, 0, len(p.args))
	add := func(a string) {
		a = strings.TrimSpace(a)
		if a == "" {
			return
		}
		key := strings.ToLower(a)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		addresses = append(addresses, a)
	}

	for _, a := range p.args {
		add(a)
	}

	if p.walletFilePath != "" {
		p.logger.Debug("Loading addresses from file", "path", p.walletFilePath)
		fromFile, err := walletloader.NewAddressFileLoader(p.walletFilePath, p.logger.Info).GetAddresses()
		if err != nil {
			p.logger.Error("Failed to load addresses", "path", p.walletFilePath, "error", err)
			return nil, err
		}
		for _, a := range fromFile {
			add(a)
		}
	}

	p.logger.Info("Addresses collected", "count", len(addresses))
	return addresses, nil
}
