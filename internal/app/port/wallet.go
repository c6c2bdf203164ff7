package port

// AddressProvider defines the interface for fetching wallet addresses to roast in batch.
type AddressProvider interface {
	GetAddresses() ([]string, error)
}
