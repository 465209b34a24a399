package config

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"github.com/gowebpki/jcs"
)

// Digest returns a sha256 over the RFC 8785 canonical JSON of the resolved
// values. Equal configurations give equal digests regardless of key order or
// file format.
func (o *Options) Digest() (string, error) {
	values, err := o.snapshot()
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", derrors.InternalError("marshal options", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", derrors.InternalError("canonicalize options", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
