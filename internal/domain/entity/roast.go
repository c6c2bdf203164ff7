package entity

import "time"

// RoastRequest is a single user action asking for a wallet roast.
type RoastRequest struct {
	Address string
	// Network is optional; empty selects the configured default network.
	Network string
}

// RoastResult carries the generated roast text verbatim.
type RoastResult struct {
	Address     string
	Network     string
	Roast       string
	GeneratedAt time.Time
}
