package miele

import (
	"fmt"
	"net/netip"
)

// ValidateHost checks that host is a syntactically valid IPv4 dotted-quad.
//
// Everything else is rejected with ErrInvalidHost: hostnames, IPv6
// literals, short quads like "192.168.1", octets above 255, and anything
// containing path separators. The bridge never resolves names; callers
// address appliances by LAN IP only, which keeps the forwarding surface
// from being pointed at arbitrary hosts.
func ValidateHost(host string) error {
	addr, err := netip.ParseAddr(host)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}
	return nil
}
