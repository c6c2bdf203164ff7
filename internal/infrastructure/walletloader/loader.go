package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"roast_agent/internal/app/port"
	"roast_agent/internal/pkg/utils"
)

// AddressFileLoader implements port.AddressProvider by reading one Sui
// address per line. Blank lines and lines starting with # are ignored.
type AddressFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewAddressFileLoader creates a new AddressFileLoader for filePath.
func NewAddressFileLoader(filePath string, loggerInfo func(msg string, args ...any)) port.AddressProvider {
	return &AddressFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// GetAddresses reads wallet addresses from the configured file path.
// Malformed lines are skipped and logged.
func (l *AddressFileLoader) GetAddresses() ([]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open address file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var addresses []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !utils.IsValidSuiAddress(line) {
			if l.loggerInfo != nil {
				l.loggerInfo("Skipping invalid wallet address format", "file", l.filePath, "line_number", lineNum, "address", line)
			}
			continue
		}
		addresses = append(addresses, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning address file %s: %w", l.filePath, err)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Addresses loaded successfully from file", "count", len(addresses), "path", l.filePath)
	}
	return addresses, nil
}
