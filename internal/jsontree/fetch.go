package jsontree

import (
	"context"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const (
	InvalidURL        failure.StringCode = "InvalidURL"
	OriginUnavailable failure.StringCode = "OriginUnavailable"
	InvalidPayload    failure.StringCode = "InvalidPayload"
)

// MaxDocumentSize is the largest response body Fetch will read.
const MaxDocumentSize = 10 << 20

var validate = validator.New()

var (
	errPrivateAddress  = errors.New("address is not publicly routable")
	sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")
)

// NewClient returns a client that refuses to connect to loopback, private,
// link-local and unspecified addresses. The check runs on the resolved
// address of every connection, redirects included.
func NewClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   publicOnly,
	}
	return &http.Client{
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

func publicOnly(_ string, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if !IsPublic(ip) {
		return errPrivateAddress
	}
	return nil
}

// IsPublic reports whether ip may be reached on behalf of a visitor.
func IsPublic(ip netip.Addr) bool {
	ip = ip.Unmap()
	switch {
	case !ip.IsValid(),
		ip.IsLoopback(),
		ip.IsPrivate(),
		ip.IsUnspecified(),
		ip.IsLinkLocalUnicast(),
		ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(),
		ip.IsMulticast(),
		sharedAddressSpace.Contains(ip):
		return false
	}
	return true
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, failure.New(InvalidURL, failure.Message("No URL provided"))
	}
	if err := validate.Var(raw, "url"); err != nil {
		return nil, failure.Translate(err, InvalidURL, failure.Message("Invalid URL format"))
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, failure.Translate(err, InvalidURL, failure.Message("Invalid URL format"))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, failure.New(InvalidURL, failure.Message("URL must use HTTP or HTTPS protocol"))
	}
	if u.Host == "" {
		return nil, failure.New(InvalidURL, failure.Message("Invalid URL format"))
	}
	return u, nil
}

// Fetch downloads and parses the JSON document at raw. The URL is checked
// before any request is made.
func Fetch(ctx context.Context, client *http.Client, raw string) (Value, error) {
	u, err := ValidateURL(raw)
	if err != nil {
		return Value{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Value{}, failure.MarkUnexpected(err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if errors.Is(err, errPrivateAddress) {
		return Value{}, failure.Translate(err, InvalidURL,
			failure.Context{"url": u.String()},
			failure.Message("URL must point to a public address"),
		)
	}
	if err != nil {
		return Value{}, failure.Translate(err, OriginUnavailable, failure.Context{"url": u.String()})
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Value{}, failure.New(OriginUnavailable,
			failure.Context{"url": u.String()},
			failure.Messagef("HTTP error! status: %d", resp.StatusCode),
		)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return Value{}, failure.Translate(err, OriginUnavailable, failure.Context{"url": u.String()})
	}
	if len(body) > MaxDocumentSize {
		return Value{}, failure.New(InvalidPayload,
			failure.Context{"url": u.String()},
			failure.Messagef("JSON document is larger than %d bytes", MaxDocumentSize),
		)
	}
	v, err := Parse(body)
	if err != nil {
		return Value{}, failure.Wrap(err, failure.Context{"url": u.String(), "bytes": strconv.Itoa(len(body))})
	}
	return v, nil
}
