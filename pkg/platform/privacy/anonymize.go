// Package privacy provides utilities for handling personally identifiable information (PII)
// before it reaches logs or outbound events.
package privacy

import (
	"fmt"
	"net"
	"strings"
)

// AnonymizeIP truncates an IP address to remove the host-identifying portion.
//
// For IPv4 addresses, the last octet is zeroed (e.g., "192.168.1.47" -> "192.168.1.0").
// For IPv6 addresses, only the /48 prefix is kept.
//
// Returns "invalid" for unparseable IP addresses, and "unknown" for empty strings.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "invalid"
	}

	if v4 := parsed.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.0", v4[0], v4[1], v4[2])
	}

	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::",
		parsed[0], parsed[1],
		parsed[2], parsed[3],
		parsed[4], parsed[5])
}

// MaskSecret replaces all but the last two characters of a secret with '*'.
// Secrets of two characters or fewer are fully masked.
func MaskSecret(secret string) string {
	if len(secret) <= 2 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-2) + secret[len(secret)-2:]
}
