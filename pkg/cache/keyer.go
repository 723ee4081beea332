package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Keyer derives cache keys. Keys embed every input that influences the
// cached value, so a change to any option produces a different key.
type Keyer interface {
	// LayoutKey returns the key for the laid-out record of a document.
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts lists the layout settings that change the output.
type LayoutKeyOpts struct {
	NodeWidth     float64
	NodeHeight    float64
	HorizontalGap float64
	VerticalGap   float64
	Padding       float64
}

// Hash returns the hex SHA-256 digest of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DefaultKeyer produces keys of the form "layout:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey hashes the source hash together with opts. Every float is
// written with strconv's shortest round-trip form, so distinct settings
// (NaN and ±Inf included) always produce distinct keys.
func (DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	var b strings.Builder
	b.WriteString(sourceHash)
	for _, v := range []float64{opts.NodeWidth, opts.NodeHeight, opts.HorizontalGap, opts.VerticalGap, opts.Padding} {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return "layout:" + Hash([]byte(b.String()))
}

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// release so a shared cache never serves layouts from another version.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sourceHash, opts)
}
