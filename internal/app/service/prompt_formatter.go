package service

import (
	"fmt"
	"strings"
	"time"

	"roast_agent/internal/domain/entity"
	"roast_agent/internal/pkg/utils"
)

const (
	summaryListLimit = 5
	unknownAge       = "Unknown"
	noCollections    = "None"
)

// FormatWalletSummary renders data as the "Wallet Analysis" block embedded in
// the generation prompt. It never fails; a malformed balance renders as 0.00.
func FormatWalletSummary(data entity.WalletData, now time.Time) string {
	collections := make([]string, 0, summaryListLimit)
	for _, nft := range utils.FirstN(data.NFTs, summaryListLimit) {
		collections = append(collections, nft.Collection)
	}
	notable := strings.Join(collections, ", ")
	if notable == "" {
		notable = noCollections
	}

	types := make([]string, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		types = append(types, tx.Type)
	}
	order, counts := utils.CountInOrder(types)
	patterns := make([]string, 0, len(order))
	for _, t := range order {
		patterns = append(patterns, fmt.Sprintf("%s: %d times", t, counts[t]))
	}

	var b strings.Builder
	b.WriteString("\nWallet Analysis:\n")
	fmt.Fprintf(&b, "- Current Balance: %s SUI\n", utils.FormatMist(data.Balance))
	fmt.Fprintf(&b, "- Number of NFTs: %d\n", len(data.NFTs))
	fmt.Fprintf(&b, "- Notable NFT Collections: %s\n", notable)
	fmt.Fprintf(&b, "- Transaction Count: %d\n", len(data.Transactions))
	fmt.Fprintf(&b, "- Account Age: %s\n", AccountAge(data.OldestTx, now))
	fmt.Fprintf(&b, "- Transaction Patterns: %s\n", strings.Join(patterns, ", "))
	fmt.Fprintf(&b, "- Recent Activity: %s\n", strings.Join(utils.FirstN(types, summaryListLimit), ", "))
	return b.String()
}

// AccountAge returns whole days between oldestTx and now, e.g. "12 days", or
// "Unknown" when oldestTx is empty or unparseable.
func AccountAge(oldestTx string, now time.Time) string {
	if oldestTx == "" {
		return unknownAge
	}
	t, err := time.Parse(time.RFC3339, oldestTx)
	if err != nil {
		return unknownAge
	}
	days := int64(now.Sub(t) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return fmt.Sprintf("%d days", days)
}
