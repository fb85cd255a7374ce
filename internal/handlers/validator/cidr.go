package validator

import (
	"fmt"
	"net"
	"strings"
)

// ValidateCIDRList checks a comma-separated CIDR list strictly: one invalid
// entry fails the whole list. Empty input is valid.
func ValidateCIDRList(list string) error {
	for _, entry := range splitCIDRList(list) {
		if _, _, err := net.ParseCIDR(entry); err != nil {
			return fmt.Errorf("invalid CIDR %q: %w", entry, err)
		}
	}
	return nil
}

// ParseCIDRList extracts the valid networks from a comma-separated list,
// silently skipping invalid entries. Used for best-effort filtering where
// strict validation already happened or does not apply.
func ParseCIDRList(list string) []*net.IPNet {
	networks := []*net.IPNet{}
	for _, entry := range splitCIDRList(list) {
		if _, network, err := net.ParseCIDR(entry); err == nil {
			networks = append(networks, network)
		}
	}
	return networks
}

func splitCIDRList(list string) []string {
	entries := []string{}
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
