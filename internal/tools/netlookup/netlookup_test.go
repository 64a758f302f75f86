package netlookup

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
)

func TestCleanDomain(t *testing.T) {
	tests := map[string]string{
		"example.com":                      "example.com",
		"https://www.Example.com/path?q=1": "example.com",
		"http://api.example.com:8080/":     "api.example.com",
		"  WWW.example.org.  ":             "example.org",
		"example.com#frag":                 "example.com",
	}
	for in, want := range tests {
		if got := CleanDomain(in); got != want {
			t.Errorf("CleanDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeResolver struct {
	ips []net.IP
	err error
	got string
}

func (f *fakeResolver) LookupIP(_ context.Context, _, host string) ([]net.IP, error) {
	f.got = host
	return f.ips, f.err
}

func TestResolve(t *testing.T) {
	r := &fakeResolver{ips: []net.IP{
		net.ParseIP("2606:4700::6810:84e5"),
		net.ParseIP("104.16.133.229"),
		net.ParseIP("104.16.132.229"),
	}}
	res, err := Resolve(context.Background(), r, "https://www.example.com/about")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.got != "example.com" {
		t.Errorf("queried %q", r.got)
	}
	if strings.Join(res.IPv4, ",") != "104.16.132.229,104.16.133.229" {
		t.Errorf("ipv4: %v", res.IPv4)
	}
	if len(res.IPv6) != 1 || res.IPv6[0] != "2606:4700::6810:84e5" {
		t.Errorf("ipv6: %v", res.IPv6)
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		r     *fakeResolver
		kind  apperr.Kind
		msg   string
	}{
		{"empty", " ", &fakeResolver{}, apperr.KindValidation, "Please enter a domain."},
		{"no dot", "localhost", &fakeResolver{}, apperr.KindValidation, "not a domain"},
		{"nxdomain", "nope.invalid", &fakeResolver{err: &net.DNSError{Err: "no such host", Name: "nope.invalid", IsNotFound: true}}, apperr.KindValidation, "No IP addresses"},
		{"no answers", "empty.example", &fakeResolver{}, apperr.KindValidation, "No IP addresses"},
		{"timeout", "slow.example", &fakeResolver{err: &net.DNSError{Err: "i/o timeout", IsTimeout: true}}, apperr.KindTransient, "Failed to fetch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(context.Background(), tt.r, tt.input)
			if apperr.KindOf(err) != tt.kind {
				t.Errorf("kind: got %v, want %v (%v)", apperr.KindOf(err), tt.kind, err)
			}
			if !strings.Contains(apperr.UserMessage(err), tt.msg) {
				t.Errorf("message %q does not contain %q", apperr.UserMessage(err), tt.msg)
			}
		})
	}
}

// whoisServer answers each query with respond(query) and returns its address.
func whoisServer(t *testing.T, respond func(query string) string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			line, _ := bufio.NewReader(conn).ReadString('\n')
			conn.Write([]byte(respond(strings.TrimSpace(line))))
			conn.Close()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		wg.Wait()
	})
	return ln.Addr().String()
}

const registryAnswer = `   Domain Name: EXAMPLE.COM
   Registrar WHOIS Server: %s
   Registrar: RESERVED-Internet Assigned Numbers Authority
   Updated Date: 2024-08-14T07:01:34Z
   Creation Date: 1995-08-14T04:00:00Z
   Registry Expiry Date: 2025-08-13T04:00:00Z
   Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited
   Domain Status: clientTransferProhibited https://icann.org/epp#clientTransferProhibited
   Name Server: A.IANA-SERVERS.NET
   Name Server: B.IANA-SERVERS.NET
>>> Last update of whois database: 2024-10-01T00:00:00Z <<<
`

func TestWhoisLookup_FollowsReferrals(t *testing.T) {
	var queries []string
	var mu sync.Mutex
	record := func(q string) {
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
	}
	registrar := whoisServer(t, func(q string) string {
		record(q)
		return "Domain Name: example.com\nRegistrar: Example Registrar, LLC\nRegistrant Organization: Internet Assigned Numbers Authority\nName Server: a.iana-servers.net\n"
	})
	registry := whoisServer(t, func(q string) string {
		record(q)
		return strings.Replace(registryAnswer, "%s", registrar, 1)
	})
	root := whoisServer(t, func(q string) string {
		record(q)
		return "% IANA WHOIS server\n\nrefer:        " + registry + "\n\ndomain:       COM\nnserver:      A.GTLD-SERVERS.NET 192.5.6.30\n"
	})

	c := &WhoisClient{Root: root, Timeout: 5 * time.Second}
	rec, err := c.Lookup(context.Background(), "https://Example.com/")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Server != registrar {
		t.Errorf("answer came from %s, want the registrar", rec.Server)
	}
	if rec.Registrar != "Example Registrar, LLC" || rec.Registrant != "Internet Assigned Numbers Authority" {
		t.Errorf("record: %+v", rec)
	}
	if len(queries) != 3 {
		t.Fatalf("queries: %v", queries)
	}
	for _, q := range queries {
		if q != "example.com" {
			t.Errorf("query %q", q)
		}
	}
}

func TestWhoisLookup_RegistrarDownKeepsRegistryData(t *testing.T) {
	dead, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	deadAddr := dead.Addr().String()
	dead.Close()

	registry := whoisServer(t, func(string) string { return strings.Replace(registryAnswer, "%s", deadAddr, 1) })
	root := whoisServer(t, func(string) string { return "refer: " + registry + "\n" })

	rec, err := (&WhoisClient{Root: root, Timeout: 5 * time.Second}).Lookup(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Server != registry {
		t.Errorf("server: %s", rec.Server)
	}
	if rec.Created != "1995-08-14T04:00:00Z" || rec.Expires != "2025-08-13T04:00:00Z" {
		t.Errorf("dates: %+v", rec)
	}
	if strings.Join(rec.NameServers, ",") != "a.iana-servers.net,b.iana-servers.net" {
		t.Errorf("name servers: %v", rec.NameServers)
	}
	if strings.Join(rec.Status, ",") != "clientDeleteProhibited,clientTransferProhibited" {
		t.Errorf("status: %v", rec.Status)
	}
}

func TestWhoisLookup_Errors(t *testing.T) {
	empty := whoisServer(t, func(string) string { return "% no match\n" })
	_, err := (&WhoisClient{Root: empty}).Lookup(context.Background(), "unregistered.example")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("no record: %v", err)
	}

	dead, _ := net.Listen("tcp", "127.0.0.1:0")
	addr := dead.Addr().String()
	dead.Close()
	_, err = (&WhoisClient{Root: addr, Timeout: time.Second}).Lookup(context.Background(), "example.com")
	if apperr.KindOf(err) != apperr.KindTransient {
		t.Errorf("root down: %v", err)
	}

	_, err = (&WhoisClient{Root: addr}).Lookup(context.Background(), "")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("blank domain: %v", err)
	}
}

func TestReferral(t *testing.T) {
	if got := referral("refer: whois.verisign-grs.com\n", IANAServer); got != "whois.verisign-grs.com:43" {
		t.Errorf("refer: %s", got)
	}
	if got := referral("Registrar WHOIS Server: whois://whois.example.net\n", "x:43"); got != "whois.example.net:43" {
		t.Errorf("registrar server: %s", got)
	}
	if got := referral("Registrar WHOIS Server: whois.example.net\n", "whois.example.net:43"); got != "" {
		t.Errorf("self referral should end the chain, got %s", got)
	}
}
