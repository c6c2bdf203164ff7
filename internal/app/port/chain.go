package port

import (
	"context"

	"roast_agent/internal/domain/entity"
)

// WalletDataFetcher fetches and normalizes a wallet's on-chain activity.
type WalletDataFetcher interface {
	// FetchWalletData runs the balance, owned-objects and transactions queries
	// for address on the given network and combines them. No partial results
	// are returned: either all three queries succeed or an error is returned.
	FetchWalletData(ctx context.Context, network string, address string) (*entity.WalletData, error)
}

// SuiClient defines the interface for reading wallet data from one Sui network.
type SuiClient interface {
	// FetchWalletData fetches balance, owned objects and recent transactions for address.
	FetchWalletData(ctx context.Context, address string) (*entity.WalletData, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition

	// Close releases the underlying connections.
	Close()
}

// SuiClientProvider defines the interface for providing Sui clients per network.
type SuiClientProvider interface {
	GetClient(networkDefinition entity.NetworkDefinition) (SuiClient, error)
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all enabled network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns an enabled network definition by identifier.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)

	// DefaultNetwork returns the network used when a request names none.
	DefaultNetwork() entity.NetworkDefinition
}
