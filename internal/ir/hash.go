package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainCatalog = "floatlat/catalog/v1"
	DomainSurface = "floatlat/surface/v1"
)

// Fingerprint identifies a canonical document two ways: a domain-separated
// SHA-256 hex digest and a CIDv1 (raw codec, sha2-256) over the same bytes.
type Fingerprint struct {
	Hash string `json:"hash"`
	CID  string `json:"cid"`
}

// domainBytes returns domain + 0x00 + data.
// The null byte separator prevents domain/data boundary ambiguity.
func domainBytes(domain string, data []byte) []byte {
	out := make([]byte, 0, len(domain)+1+len(data))
	out = append(out, domain...)
	out = append(out, 0x00)
	return append(out, data...)
}

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func hashWithDomain(domain string, data []byte) string {
	sum := sha256.Sum256(domainBytes(domain, data))
	return hex.EncodeToString(sum[:])
}

// cidWithDomain computes a CIDv1 (raw, sha2-256) over domain + 0x00 + data.
func cidWithDomain(domain string, data []byte) (string, error) {
	sum, err := multihash.Sum(domainBytes(domain, data), multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

func fingerprint(domain string, v Value) (Fingerprint, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return Fingerprint{}, err
	}
	c, err := cidWithDomain(domain, canonical)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Hash: hashWithDomain(domain, canonical), CID: c}, nil
}

// CatalogFingerprint identifies an ordered list of categories.
func CatalogFingerprint(cats []Category) (Fingerprint, error) {
	arr := make(Array, len(cats))
	for i, c := range cats {
		arr[i] = CategoryValue(c)
	}
	fp, err := fingerprint(DomainCatalog, arr)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("CatalogFingerprint: %w", err)
	}
	return fp, nil
}

// SurfaceFingerprint identifies an ordered list of decision cells.
// Equal surfaces always produce equal fingerprints.
func SurfaceFingerprint(cells []Cell) (Fingerprint, error) {
	arr := make(Array, len(cells))
	for i, c := range cells {
		arr[i] = CellValue(c)
	}
	fp, err := fingerprint(DomainSurface, arr)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("SurfaceFingerprint: %w", err)
	}
	return fp, nil
}
