package networkdefinition

import (
	"fmt"
	"strings"

	"roast_agent/internal/app/port"
	"roast_agent/internal/domain/entity"
)

// NetworkDefinitionProvider provides Sui network definitions.
type NetworkDefinitionProvider struct {
	logger            port.Logger
	allNetworkDefs    map[string]entity.NetworkDefinition
	activeNetworkDefs []entity.NetworkDefinition
	defaultNetwork    entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Mainnet = entity.NetworkDefinition{
		Identifier:       "mainnet",
		Name:             "Sui Mainnet",
		NativeSymbol:     "SUI",
		CoinType:         entity.SuiCoinType,
		RPCURL:           "https://fullnode.mainnet.sui.io:443",
		BlockExplorerURL: "https://suiscan.xyz/mainnet",
	}
	Testnet = entity.NetworkDefinition{
		Identifier:       "testnet",
		Name:             "Sui Testnet",
		NativeSymbol:     "SUI",
		CoinType:         entity.SuiCoinType,
		RPCURL:           "https://fullnode.testnet.sui.io:443",
		BlockExplorerURL: "https://suiscan.xyz/testnet",
	}
	Devnet = entity.NetworkDefinition{
		Identifier:       "devnet",
		Name:             "Sui Devnet",
		NativeSymbol:     "SUI",
		CoinType:         entity.SuiCoinType,
		RPCURL:           "https://fullnode.devnet.sui.io:443",
		BlockExplorerURL: "https://suiscan.xyz/devnet",
	}
)

// knownOrder keeps GetAllNetworkDefinitions deterministic.
var knownOrder = []string{Mainnet.Identifier, Testnet.Identifier, Devnet.Identifier}

func allKnownDefinitions() map[string]entity.NetworkDefinition {
	return map[string]entity.NetworkDefinition{
		Mainnet.Identifier: Mainnet,
		Testnet.Identifier: Testnet,
		Devnet.Identifier:  Devnet,
	}
}

// Options configures which networks are served.
type Options struct {
	// Enabled lists network identifiers to serve; empty enables every known network.
	Enabled []string
	// Default is the identifier used when a request names no network.
	Default string
	// RPCURLOverride replaces the node URL of the default network when set.
	RPCURLOverride string
}

// NewNetworkDefinitionProvider creates a new NetworkDefinitionProvider.
// It fails when the default network is unknown or not enabled.
func NewNetworkDefinitionProvider(log port.Logger, opts Options) (*NetworkDefinitionProvider, error) {
	p := &NetworkDefinitionProvider{
		logger:            log,
		allNetworkDefs:    allKnownDefinitions(),
		activeNetworkDefs: make([]entity.NetworkDefinition, 0, len(knownOrder)),
	}

	defaultID := normalize(opts.Default)
	if defaultID == "" {
		defaultID = Mainnet.Identifier
	}
	if opts.RPCURLOverride != "" {
		if def, ok := p.allNetworkDefs[defaultID]; ok {
			def.RPCURL = opts.RPCURLOverride
			p.allNetworkDefs[defaultID] = def
			p.logger.Info("Using custom RPC URL for default network", "network", defaultID, "rpc_url", opts.RPCURLOverride)
		}
	}

	enabled := make(map[string]struct{}, len(opts.Enabled))
	for _, id := range opts.Enabled {
		id = normalize(id)
		if _, ok := p.allNetworkDefs[id]; !ok {
			p.logger.Warn(fmt.Sprintf("Enabled network '%s' has no known definition. Skipping.", id))
			continue
		}
		enabled[id] = struct{}{}
	}

	for _, id := range knownOrder {
		if len(enabled) > 0 {
			if _, ok := enabled[id]; !ok {
				continue
			}
		}
		p.activeNetworkDefs = append(p.activeNetworkDefs, p.allNetworkDefs[id])
	}

	def, ok := p.GetNetworkDefinitionByName(defaultID)
	if !ok {
		return nil, fmt.Errorf("%w: default network %q", entity.ErrUnknownNetwork, defaultID)
	}
	p.defaultNetwork = def

	p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Active networks: %d", len(p.activeNetworkDefs)), "default", def.Identifier)
	for _, netDef := range p.activeNetworkDefs {
		p.logger.Debug(fmt.Sprintf("  - Active network: %s (ID: %s, RPC: %s)", netDef.Name, netDef.Identifier, netDef.RPCURL))
	}
	return p, nil
}

// GetAllNetworkDefinitions returns the list of enabled network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.activeNetworkDefs))
	copy(defsCopy, p.activeNetworkDefs)
	return defsCopy
}

// GetNetworkDefinitionByName returns an enabled network definition by its
// identifier, matched case-insensitively.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	identifier = normalize(identifier)
	for _, def := range p.activeNetworkDefs {
		if def.Identifier == identifier {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

// DefaultNetwork returns the network used when a request names none.
func (p *NetworkDefinitionProvider) DefaultNetwork() entity.NetworkDefinition {
	return p.defaultNetwork
}

func normalize(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)
