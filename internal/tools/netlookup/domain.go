// Package netlookup resolves domains to addresses and queries WHOIS
// registries.
package netlookup

import (
	"context"
	"errors"
	"net"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// DefaultTimeout bounds one lookup.
const DefaultTimeout = 10 * time.Second

var schemePrefix = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?`)

// CleanDomain strips a URL down to its host: scheme, "www.", path, port
// and trailing dot are removed and the result is lowercased.
func CleanDomain(input string) string {
	d := schemePrefix.ReplaceAllString(strings.TrimSpace(input), "")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if host, _, err := net.SplitHostPort(d); err == nil {
		d = host
	}
	return strings.TrimSuffix(strings.ToLower(d), ".")
}

func validDomain(d string) error {
	if d == "" {
		return apperr.Validationf("Please enter a domain.")
	}
	if !strings.Contains(d, ".") || strings.ContainsAny(d, " \t@") {
		return apperr.Validationf("%q is not a domain name.", d)
	}
	return nil
}

// Resolver is the part of net.Resolver the lookup needs.
type Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

// Resolution lists the addresses a domain resolves to.
type Resolution struct {
	Domain string   `json:"domain"`
	IPv4   []string `json:"ipv4"`
	IPv6   []string `json:"ipv6,omitempty"`
}

// Resolve looks up the A and AAAA records of input's domain. A nil
// resolver uses net.DefaultResolver.
func Resolve(ctx context.Context, r Resolver, input string) (*Resolution, error) {
	domain := CleanDomain(input)
	if err := validDomain(domain); err != nil {
		return nil, err
	}
	if r == nil {
		r = net.DefaultResolver
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	ips, err := r.LookupIP(ctx, "ip", domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, apperr.Validation(err, "No IP addresses found for this domain.")
		}
		return nil, apperr.Transient(err, "Failed to fetch IP addresses. Please check the domain.")
	}
	res := &Resolution{Domain: domain}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			res.IPv4 = append(res.IPv4, v4.String())
		} else {
			res.IPv6 = append(res.IPv6, ip.String())
		}
	}
	if len(res.IPv4)+len(res.IPv6) == 0 {
		return nil, apperr.Validationf("No IP addresses found for this domain.")
	}
	sort.Strings(res.IPv4)
	sort.Strings(res.IPv6)
	return res, nil
}
