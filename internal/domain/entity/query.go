package entity

// WalletQueryKind identifies one of the read queries issued for a wallet.
type WalletQueryKind int

const (
	// BalanceQuery requests the SUI coin balance of a wallet.
	BalanceQuery WalletQueryKind = iota
	// OwnedObjectsQuery requests owned objects with display metadata.
	OwnedObjectsQuery
	// TransactionsQuery requests transaction blocks sent from the wallet.
	TransactionsQuery
)

const (
	// SuiCoinType is the coin type of the native SUI token.
	SuiCoinType = "0x2::sui::SUI"
	// MistPerSui is the number of MIST in one SUI.
	MistPerSui = 1_000_000_000
	// TransactionPageSize caps the number of transactions fetched per wallet.
	TransactionPageSize = 50
	// OwnedObjectsPageSize caps the number of owned objects fetched per wallet.
	OwnedObjectsPageSize = 50
)

// Method returns the Sui JSON-RPC method serving the query.
func (k WalletQueryKind) Method() string {
	switch k {
	case BalanceQuery:
		return "suix_getBalance"
	case OwnedObjectsQuery:
		return "suix_getOwnedObjects"
	case TransactionsQuery:
		return "suix_queryTransactionBlocks"
	default:
		return "unknown"
	}
}

func (k WalletQueryKind) String() string {
	switch k {
	case BalanceQuery:
		return "balance"
	case OwnedObjectsQuery:
		return "owned_objects"
	case TransactionsQuery:
		return "transactions"
	default:
		return "unknown"
	}
}
