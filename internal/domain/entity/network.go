package entity

// NetworkDefinition holds the configuration for a Sui network.
type NetworkDefinition struct {
	Identifier       string `json:"identifier" yaml:"identifier"` // "mainnet", "testnet", "devnet"
	Name             string `json:"name" yaml:"name"`
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	CoinType         string `json:"coinType" yaml:"coinType"`
	RPCURL           string `json:"rpcUrl" yaml:"rpcUrl"`
	BlockExplorerURL string `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
