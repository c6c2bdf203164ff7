package provider

import (
	"context"
	"fmt"

	"roast_agent/internal/app/port"
	"roast_agent/internal/domain/entity"
)

type walletDataProviderImpl struct {
	networks port.NetworkDefinitionProvider
	clients  port.SuiClientProvider
	logger   port.Logger
}

// NewWalletDataProvider creates a WalletDataFetcher that resolves the network
// and delegates to that network's Sui client.
func NewWalletDataProvider(np port.NetworkDefinitionProvider, cp port.SuiClientProvider, logger port.Logger) port.WalletDataFetcher {
	return &walletDataProviderImpl{networks: np, clients: cp, logger: logger}
}

// FetchWalletData fetches wallet data for address on the named network.
func (p *walletDataProviderImpl) FetchWalletData(ctx context.Context, network, address string) (*entity.WalletData, error) {
	netDef, ok := p.networks.GetNetworkDefinitionByName(network)
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownNetwork, network)
	}

	client, err := p.clients.GetClient(netDef)
	if err != nil {
		p.logger.Error("Failed to get Sui client for network", "network", netDef.Identifier, "error", err)
		return nil, fmt.Errorf("%w: %w", entity.ErrWalletFetch, err)
	}

	def := client.Definition()
	p.logger.Debug("Fetching wallet data", "network", def.Identifier, "rpc_url", def.RPCURL, "address", address)
	return client.FetchWalletData(ctx, address)
}
