package netlookup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

// IANAServer answers for every TLD and refers to the registry's server.
const IANAServer = "whois.iana.org:43"

// maxResponse caps one WHOIS answer.
const maxResponse = 1 << 20

// maxHops bounds the referral chain (IANA, registry, registrar).
const maxHops = 3

// WhoisRecord is the parsed registration data of a domain.
type WhoisRecord struct {
	Domain      string   `json:"domain"`
	Registrar   string   `json:"registrar,omitempty"`
	Registrant  string   `json:"registrant,omitempty"`
	Created     string   `json:"created,omitempty"`
	Updated     string   `json:"updated,omitempty"`
	Expires     string   `json:"expires,omitempty"`
	Status      []string `json:"status,omitempty"`
	NameServers []string `json:"name_servers,omitempty"`
	Server      string   `json:"server"`
	Raw         string   `json:"raw"`
}

// WhoisClient speaks the WHOIS protocol (RFC 3912) over TCP port 43.
type WhoisClient struct {
	// Root is queried first; empty means IANAServer.
	Root    string
	Timeout time.Duration
	Dialer  *net.Dialer
}

// Lookup queries the root server and follows referrals to the most
// specific server that answers.
func (c *WhoisClient) Lookup(ctx context.Context, input string) (*WhoisRecord, error) {
	domain := CleanDomain(input)
	if err := validDomain(domain); err != nil {
		return nil, err
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	server := c.Root
	if server == "" {
		server = IANAServer
	}
	var rec *WhoisRecord
	for hop := 0; hop < maxHops && server != ""; hop++ {
		raw, err := c.query(ctx, server, domain)
		if err != nil {
			if hop >= 2 {
				// The registrar hop is optional; the registry answer stands.
				break
			}
			return nil, apperr.Transient(err, "The WHOIS server did not answer. Try again later.")
		}
		next := ParseWhois(raw)
		next.Domain = domain
		next.Server = server
		if hop < 2 || next.Registrar != "" || len(next.NameServers) > 0 {
			rec = next
		}
		server = referral(raw, server)
	}
	if rec.Registrar == "" && rec.Created == "" && len(rec.NameServers) == 0 {
		return nil, apperr.Validationf("No WHOIS record found for %s.", domain)
	}
	return rec, nil
}

func (c *WhoisClient) query(ctx context.Context, server, domain string) (string, error) {
	d := c.Dialer
	if d == nil {
		d = &net.Dialer{}
	}
	conn, err := d.DialContext(ctx, "tcp", server)
	if err != nil {
		return "", fmt.Errorf("dial %s: %w", server, err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	if _, err := io.WriteString(conn, domain+"\r\n"); err != nil {
		return "", fmt.Errorf("query %s: %w", server, err)
	}
	data, err := io.ReadAll(io.LimitReader(conn, maxResponse))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", server, err)
	}
	return string(data), nil
}

// referral returns the next server named in raw, or "" when raw names
// none or only names current.
func referral(raw, current string) string {
	for _, key := range []string{"refer", "whois", "registrar whois server"} {
		for _, v := range fieldValues(raw, key) {
			next := strings.TrimPrefix(strings.TrimPrefix(v, "whois://"), "rwhois://")
			if next == "" {
				continue
			}
			if _, _, err := net.SplitHostPort(next); err != nil {
				next = net.JoinHostPort(next, "43")
			}
			if !strings.EqualFold(next, current) {
				return next
			}
		}
	}
	return ""
}

// ParseWhois extracts the common fields of a thin or thick WHOIS answer.
// Only the first value of single-valued fields is kept.
func ParseWhois(raw string) *WhoisRecord {
	first := func(keys ...string) string {
		for _, k := range keys {
			if v := fieldValues(raw, k); len(v) > 0 {
				return v[0]
			}
		}
		return ""
	}
	rec := &WhoisRecord{
		Registrar:  first("registrar", "sponsoring registrar"),
		Registrant: first("registrant organization", "registrant"),
		Created:    first("creation date", "created", "registered on"),
		Updated:    first("updated date", "last updated", "changed"),
		Expires:    first("registry expiry date", "registrar registration expiration date", "expiration date", "expires"),
		Raw:        raw,
	}
	seen := map[string]bool{}
	for _, ns := range append(fieldValues(raw, "name server"), fieldValues(raw, "nserver")...) {
		ns = strings.ToLower(strings.Fields(ns)[0])
		if !seen[ns] {
			seen[ns] = true
			rec.NameServers = append(rec.NameServers, ns)
		}
	}
	for _, st := range fieldValues(raw, "domain status") {
		// "clientTransferProhibited https://icann.org/epp#..." keeps the code.
		rec.Status = append(rec.Status, strings.Fields(st)[0])
	}
	return rec
}

// fieldValues returns the non-empty values of "key: value" lines whose
// key matches case-insensitively. Comment lines are skipped.
func fieldValues(raw, key string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 64<<10), maxResponse)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '%' || line[0] == '#' || strings.HasPrefix(line, ">>>") {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), key) {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
