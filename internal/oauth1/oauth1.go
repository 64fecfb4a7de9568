// Package oauth1 implements RFC 5849 HMAC-SHA1 request signing for the
// Fluig streamcontrol endpoint. Only the pieces the fetcher needs are
// implemented: single-legged signing of a GET with query parameters.
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Credentials holds the consumer and access token key pairs used to sign
// a request. All four values arrive on each inbound request and are never
// stored.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// Signer produces Authorization header values. Nonce and timestamp sources
// are injectable so signatures can be verified against fixed vectors.
type Signer struct {
	nonce     func() (string, error)
	timestamp func() int64
}

// New creates a Signer with a crypto/rand nonce source and the system clock.
func New() *Signer {
	return &Signer{
		nonce:     randomNonce,
		timestamp: func() int64 { return time.Now().Unix() },
	}
}

// Authorize signs the method and URL with the given credentials and returns
// the value for the Authorization header.
func (s *Signer) Authorize(creds Credentials, method, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	nonce, err := s.nonce()
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	oauth := map[string]string{
		"oauth_consumer_key":     creds.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.timestamp(), 10),
		"oauth_token":            creds.Token,
		"oauth_version":          "1.0",
	}

	base := signatureBase(method, u, oauth)
	oauth["oauth_signature"] = sign(creds, base)

	return authorizationHeader(oauth), nil
}

// signatureBase builds the RFC 5849 signature base string. Query parameters
// of the URL are merged with the oauth parameters before sorting.
func signatureBase(method string, u *url.URL, oauth map[string]string) string {
	type pair struct{ key, value string }

	var pairs []pair
	for key, values := range u.Query() {
		for _, value := range values {
			pairs = append(pairs, pair{percentEncode(key), percentEncode(value)})
		}
	}
	for key, value := range oauth {
		pairs = append(pairs, pair{percentEncode(key), percentEncode(value)})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p.key + "=" + p.value
	}

	return strings.ToUpper(method) +
		"&" + percentEncode(baseURL(u)) +
		"&" + percentEncode(strings.Join(encoded, "&"))
}

// baseURL returns the URL without query or fragment, with the scheme and
// host lowercased and default ports removed.
func baseURL(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)

	switch {
	case scheme == "http" && strings.HasSuffix(host, ":80"):
		host = strings.TrimSuffix(host, ":80")
	case scheme == "https" && strings.HasSuffix(host, ":443"):
		host = strings.TrimSuffix(host, ":443")
	}

	return scheme + "://" + host + u.EscapedPath()
}

// sign computes Base64(HMAC-SHA1(key, base)) where the key is the
// percent-encoded consumer secret and token secret joined by '&'.
func sign(creds Credentials, base string) string {
	key := percentEncode(creds.ConsumerSecret) + "&" + percentEncode(creds.TokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// authorizationHeader renders the oauth parameters as a single OAuth
// header value with keys in sorted order.
func authorizationHeader(oauth map[string]string) string {
	keys := make([]string, 0, len(oauth))
	for key := range oauth {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key + `="` + percentEncode(oauth[key]) + `"`
	}

	return "OAuth " + strings.Join(parts, ", ")
}

// percentEncode escapes everything outside the RFC 3986 unreserved set.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}

// randomNonce returns 128 bits of hex-encoded entropy. Nonces are not
// persisted; the remote rejects replays on its side.
func randomNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
