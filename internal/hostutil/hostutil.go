// Package hostutil classifies destination host strings reported by the
// proxy core and derives the root domain used as the favicon origin.
package hostutil

import (
	"regexp"
	"strings"
)

var (
	ipv4Re = regexp.MustCompile(`^(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(\.(25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}$`)
	ipv6Re = regexp.MustCompile(`^([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)

	// One or more label characters ending in a dot plus a 2+ letter TLD.
	domainRe = regexp.MustCompile(`^[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// IsIPAddress reports whether host is an IP literal: dotted-decimal IPv4
// with octets 0-255, fully-expanded 8-group IPv6, or the shorthand
// literals "::" and "::1". Arbitrary "::" zero compression is deliberately
// not expanded; such literals fail classification here and also fail the
// domain pattern in ExtractRootDomain, so they end up with no root domain
// either way.
func IsIPAddress(host string) bool {
	if host == "::" || host == "::1" {
		return true
	}
	return ipv4Re.MatchString(host) || ipv6Re.MatchString(host)
}

// ExtractRootDomain returns the last two dot-separated labels of a
// validated domain name, with any ":port" suffix stripped first. Returns
// "" when host is an IP literal, fails the domain pattern, or has fewer
// than two labels. Not public-suffix aware: "a.b.example.co" yields
// "example.co".
func ExtractRootDomain(host string) string {
	if IsIPAddress(host) {
		return ""
	}
	if idx := strings.Index(host, ":"); idx >= 0 {
		host = host[:idx]
	}
	if !domainRe.MatchString(host) {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return ""
	}
	return strings.Join(labels[len(labels)-2:], ".")
}
