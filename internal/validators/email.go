// Package validators holds small input checks that sit outside the
// domain layer, like DNS-backed email verification at signup.
package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const dnsTimeout = 3 * time.Second

// IsEmailDomainValid reports whether the address's domain resolves,
// first by MX and then by A/AAAA for domains that receive mail on
// their apex. Lookups share a short deadline so a slow resolver
// cannot stall signup.
func IsEmailDomainValid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsAny(domain, " \t") {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
