package client

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "roast_agent/internal/domain/entity"
	"roast_agent/internal/entity"
)

func TestNormalizeWalletData_Empty(t *testing.T) {
	data := NormalizeWalletData(testAddress, "mainnet", nil, nil, nil)

	assert.Equal(t, "0", data.Balance)
	assert.NotNil(t, data.NFTs)
	assert.Empty(t, data.NFTs)
	assert.NotNil(t, data.Transactions)
	assert.Empty(t, data.Transactions)
	assert.False(t, data.HasOldestTx())
}

func TestNormalizeWalletData_Balance(t *testing.T) {
	tests := []struct {
		name  string
		total string
		want  string
	}{
		{"regular", "123", "123"},
		{"absent", "", "0"},
		{"negative", "-5", "0"},
		{"garbage", "lots", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NormalizeWalletData(testAddress, "mainnet", &entity.SuiBalance{TotalBalance: tt.total}, nil, nil)
			assert.Equal(t, tt.want, data.Balance)
		})
	}
}

func TestNormalizeWalletData_TruncatesTransactions(t *testing.T) {
	page := &entity.SuiTransactionBlocksPage{}
	for i := 0; i < 60; i++ {
		page.Data = append(page.Data, entity.SuiTransactionBlock{TimestampMs: strconv.Itoa(1_700_000_000_000 - i*1000)})
	}

	data := NormalizeWalletData(testAddress, "mainnet", nil, nil, page)

	assert.Len(t, data.Transactions, domain.TransactionPageSize)
	assert.Equal(t, data.Transactions[domain.TransactionPageSize-1].Timestamp, data.OldestTx)
}

func TestNormalizeWalletData_UnparseableTimestamp(t *testing.T) {
	page := &entity.SuiTransactionBlocksPage{Data: []entity.SuiTransactionBlock{{TimestampMs: "soon"}}}

	data := NormalizeWalletData(testAddress, "mainnet", nil, nil, page)

	assert.Equal(t, "", data.Transactions[0].Timestamp)
	assert.False(t, data.HasOldestTx())
}

func TestIsNFT(t *testing.T) {
	display := func(fields map[string]any) *entity.SuiDisplay { return &entity.SuiDisplay{Data: fields} }
	tests := []struct {
		name string
		obj  entity.SuiObjectData
		want bool
	}{
		{"type mentions nft", entity.SuiObjectData{Type: "0x1::my_NFT::Thing"}, true},
		{"type mentions collection", entity.SuiObjectData{Type: "0x1::Collection::Item"}, true},
		{"display name and description", entity.SuiObjectData{Type: "0x1::x::Y", Display: display(map[string]any{"name": "a", "description": "b"})}, true},
		{"display name only", entity.SuiObjectData{Type: "0x1::x::Y", Display: display(map[string]any{"name": "a"})}, false},
		{"coin", entity.SuiObjectData{Type: "0x2::coin::Coin<0x2::sui::SUI>"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNFT(&tt.obj))
		})
	}
}

func TestCollectionOf(t *testing.T) {
	withDisplay := func(fields map[string]any) *entity.SuiObjectData {
		return &entity.SuiObjectData{Type: "0xa::mod::T", Display: &entity.SuiDisplay{Data: fields}}
	}
	assert.Equal(t, "C", collectionOf(withDisplay(map[string]any{"collection": "C", "creator": "X"})))
	assert.Equal(t, "X", collectionOf(withDisplay(map[string]any{"creator": "X"})))
	assert.Equal(t, "mod", collectionOf(withDisplay(nil)))
	assert.Equal(t, "Unknown Collection", collectionOf(&entity.SuiObjectData{Type: "weird"}))
}

func TestCoinSymbol(t *testing.T) {
	assert.Equal(t, "SUI", coinSymbol("0x2::sui::SUI"))
	assert.Equal(t, "USDC", coinSymbol("0xdba::usdc::USDC"))
	assert.Equal(t, "LP", coinSymbol("0x1::pool::LP<0x2::sui::SUI, 0x3::x::X>"))
	assert.Equal(t, "plain", coinSymbol("plain"))
}

func TestBalanceChangeOwner(t *testing.T) {
	change := entity.SuiBalanceChange{Owner: json.RawMessage(`{"ObjectOwner":"0x5"}`)}
	tx := entity.SuiTransactionBlock{BalanceChanges: []entity.SuiBalanceChange{change}}

	got := toTransaction(testAddress, tx)

	assert.Empty(t, got.Amount)
	assert.Empty(t, got.Token)
}
