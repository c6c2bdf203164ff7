package entity

import "encoding/json"

// SuiBalance is the result of suix_getBalance.
type SuiBalance struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

// SuiOwnedObjectsPage is the result of suix_getOwnedObjects.
type SuiOwnedObjectsPage struct {
	Data        []SuiObjectResponse `json:"data"`
	NextCursor  *string             `json:"nextCursor"`
	HasNextPage bool                `json:"hasNextPage"`
}

// SuiObjectResponse wraps either object data or an error.
type SuiObjectResponse struct {
	Data  *SuiObjectData  `json:"data"`
	Error json.RawMessage `json:"error,omitempty"`
}

// SuiObjectData is an owned object with its type and display metadata.
type SuiObjectData struct {
	ObjectID string      `json:"objectId"`
	Version  string      `json:"version"`
	Digest   string      `json:"digest"`
	Type     string      `json:"type"`
	Display  *SuiDisplay `json:"display"`
}

// SuiDisplay holds the rendered Display standard fields of an object.
type SuiDisplay struct {
	Data  map[string]any  `json:"data"`
	Error json.RawMessage `json:"error,omitempty"`
}

// Field returns a display field as a string, or "" when absent or not a string.
func (d *SuiDisplay) Field(name string) string {
	if d == nil || d.Data == nil {
		return ""
	}
	v, ok := d.Data[name].(string)
	if !ok {
		return ""
	}
	return v
}

// SuiTransactionQuery is the first parameter of suix_queryTransactionBlocks.
type SuiTransactionQuery struct {
	Filter  map[string]string          `json:"filter"`
	Options SuiTransactionQueryOptions `json:"options"`
}

// SuiTransactionQueryOptions selects which parts of a transaction block are returned.
type SuiTransactionQueryOptions struct {
	ShowInput          bool `json:"showInput"`
	ShowEffects        bool `json:"showEffects"`
	ShowBalanceChanges bool `json:"showBalanceChanges"`
}

// SuiObjectQuery is the second parameter of suix_getOwnedObjects.
type SuiObjectQuery struct {
	Options SuiObjectQueryOptions `json:"options"`
}

// SuiObjectQueryOptions selects which object fields are returned.
type SuiObjectQueryOptions struct {
	ShowType    bool `json:"showType"`
	ShowContent bool `json:"showContent"`
	ShowDisplay bool `json:"showDisplay"`
}

// SuiTransactionBlocksPage is the result of suix_queryTransactionBlocks.
type SuiTransactionBlocksPage struct {
	Data        []SuiTransactionBlock `json:"data"`
	NextCursor  *string               `json:"nextCursor"`
	HasNextPage bool                  `json:"hasNextPage"`
}

// SuiTransactionBlock is a single transaction block response.
type SuiTransactionBlock struct {
	Digest         string                  `json:"digest"`
	TimestampMs    string                  `json:"timestampMs"`
	Transaction    *SuiTransactionEnvelope `json:"transaction"`
	BalanceChanges []SuiBalanceChange      `json:"balanceChanges"`
}

// SuiTransactionEnvelope is the signed transaction wrapper.
type SuiTransactionEnvelope struct {
	Data SuiTransactionData `json:"data"`
}

// SuiTransactionData is the transaction payload.
type SuiTransactionData struct {
	Sender      string             `json:"sender"`
	Transaction SuiTransactionKind `json:"transaction"`
}

// SuiTransactionKind carries the transaction kind, e.g. "ProgrammableTransaction".
type SuiTransactionKind struct {
	Kind string `json:"kind"`
}

// SuiBalanceChange is a coin balance delta caused by a transaction.
type SuiBalanceChange struct {
	Owner    json.RawMessage `json:"owner"`
	CoinType string          `json:"coinType"`
	Amount   string          `json:"amount"`
}

// OwnerAddress returns the address of an AddressOwner, or "" for other owner kinds.
func (c SuiBalanceChange) OwnerAddress() string {
	var owner struct {
		AddressOwner string `json:"AddressOwner"`
	}
	if err := json.Unmarshal(c.Owner, &owner); err != nil {
		return ""
	}
	return owner.AddressOwner
}
