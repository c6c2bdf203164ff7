package entity

// WalletData is the normalized view of a wallet's on-chain activity.
// It is built fresh for every roast request and never stored.
type WalletData struct {
	Address string `json:"address"`
	Network string `json:"network"`
	// Balance is the raw SUI balance in MIST, always a non-negative integer string.
	Balance      string        `json:"balance"`
	NFTs         []NFT         `json:"nfts"`
	Transactions []Transaction `json:"transactions"`
	// OldestTx is the timestamp of the last (oldest) transaction of the fetched
	// page, empty when there are no transactions. With a page capped at
	// TransactionPageSize it understates the true age of busy accounts.
	OldestTx string `json:"oldestTx,omitempty"`
}

// NFT is an owned object that looks like a collectible.
type NFT struct {
	Name       string `json:"name"`
	Collection string `json:"collection"`
}

// Transaction is a single transaction block sent from the wallet, most recent first.
type Transaction struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Amount    string `json:"amount,omitempty"`
	Token     string `json:"token,omitempty"`
}

// HasOldestTx reports whether the account age can be derived.
func (w WalletData) HasOldestTx() bool {
	return w.OldestTx != ""
}
