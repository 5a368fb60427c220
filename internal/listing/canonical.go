package listing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefixes for content digests. The version suffix allows the
// encoding to change without colliding with old digests.
const (
	DomainSnapshot = "jobdash/snapshot/v1"
)

// MarshalCanonical encodes r for hashing: fixed field order, NFC-normalized
// strings, no HTML escaping, no trailing newline.
func MarshalCanonical(r Record) ([]byte, error) {
	r.Title = norm.NFC.String(r.Title)
	r.SalaryText = norm.NFC.String(r.SalaryText)
	r.LocationText = norm.NFC.String(r.LocationText)
	r.Platform = norm.NFC.String(r.Platform)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("marshal record %d: %w", r.Index, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Digest computes a SHA-256 digest over ordered groups of records with domain
// separation: SHA256(domain 0x00 group 0x00 group ...), records within a group
// joined by newlines. Equal inputs always give equal digests.
func Digest(domain string, groups ...[]Record) (string, error) {
	h := sha256.New()
	h.Write([]byte(domain))
	for gi, group := range groups {
		h.Write([]byte{0x00})
		for i, r := range group {
			b, err := MarshalCanonical(r)
			if err != nil {
				return "", fmt.Errorf("group %d: %w", gi, err)
			}
			if i > 0 {
				h.Write([]byte{'\n'})
			}
			h.Write(b)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
