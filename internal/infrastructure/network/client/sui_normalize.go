package client

import (
	"strconv"
	"strings"
	"time"

	domain "roast_agent/internal/domain/entity"
	"roast_agent/internal/entity"
	"roast_agent/internal/pkg/utils"
)

const (
	unnamedNFT        = "Unnamed NFT"
	unknownCollection = "Unknown Collection"
	unknownTxType     = "Unknown"
)

// NormalizeWalletData combines the three raw query results into WalletData.
// Nil results are treated as empty.
func NormalizeWalletData(
	address, network string,
	balance *entity.SuiBalance,
	objects *entity.SuiOwnedObjectsPage,
	txs *entity.SuiTransactionBlocksPage,
) *domain.WalletData {
	data := &domain.WalletData{
		Address:      address,
		Network:      network,
		Balance:      "0",
		NFTs:         []domain.NFT{},
		Transactions: []domain.Transaction{},
	}

	if balance != nil {
		if _, ok := utils.ParseMist(balance.TotalBalance); ok {
			data.Balance = strings.TrimSpace(balance.TotalBalance)
		}
	}

	if objects != nil {
		for _, obj := range objects.Data {
			if obj.Data == nil || !isNFT(obj.Data) {
				continue
			}
			data.NFTs = append(data.NFTs, toNFT(obj.Data))
		}
	}

	if txs != nil {
		for _, tx := range utils.FirstN(txs.Data, domain.TransactionPageSize) {
			data.Transactions = append(data.Transactions, toTransaction(address, tx))
		}
	}
	if n := len(data.Transactions); n > 0 {
		data.OldestTx = data.Transactions[n-1].Timestamp
	}
	return data
}

// isNFT is a best-effort heuristic: the type mentions nft or collection, or
// the object renders both a display name and description.
func isNFT(obj *entity.SuiObjectData) bool {
	lowerType := strings.ToLower(obj.Type)
	if strings.Contains(lowerType, "nft") || strings.Contains(lowerType, "collection") {
		return true
	}
	return obj.Display.Field("name") != "" && obj.Display.Field("description") != ""
}

func toNFT(obj *entity.SuiObjectData) domain.NFT {
	name := obj.Display.Field("name")
	if name == "" {
		name = unnamedNFT
	}
	return domain.NFT{Name: name, Collection: collectionOf(obj)}
}

func collectionOf(obj *entity.SuiObjectData) string {
	for _, field := range []string{"collection", "creator"} {
		if v := strings.TrimSpace(obj.Display.Field(field)); v != "" {
			return v
		}
	}
	if module := moduleOf(obj.Type); module != "" {
		return module
	}
	return unknownCollection
}

// moduleOf returns the module segment of a Move type "0xpkg::module::Struct<..>".
func moduleOf(moveType string) string {
	parts := strings.SplitN(moveType, "::", 3)
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}

// coinSymbol returns the struct name of a coin type, e.g. "SUI" for 0x2::sui::SUI.
func coinSymbol(coinType string) string {
	if i := strings.Index(coinType, "<"); i >= 0 {
		coinType = coinType[:i]
	}
	if i := strings.LastIndex(coinType, "::"); i >= 0 {
		return coinType[i+2:]
	}
	return coinType
}

func toTransaction(address string, tx entity.SuiTransactionBlock) domain.Transaction {
	out := domain.Transaction{Type: unknownTxType, Timestamp: timestampOf(tx.TimestampMs)}
	if tx.Transaction != nil && tx.Transaction.Data.Transaction.Kind != "" {
		out.Type = tx.Transaction.Data.Transaction.Kind
	}
	for _, change := range tx.BalanceChanges {
		if !strings.EqualFold(change.OwnerAddress(), address) {
			continue
		}
		out.Amount = change.Amount
		out.Token = coinSymbol(change.CoinType)
		break
	}
	return out
}

func timestampOf(ms string) string {
	v, err := strconv.ParseInt(strings.TrimSpace(ms), 10, 64)
	if err != nil || v <= 0 {
		return ""
	}
	return time.UnixMilli(v).UTC().Format(time.RFC3339)
}
