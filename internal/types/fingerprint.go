package types

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is a type-aware equality key for a clipboard payload. It is
// used only to suppress re-capture of an unchanged clipboard, never to
// deduplicate across the whole history.
type Fingerprint struct {
	Type   ContentType
	Digest uint64
}

// FingerprintOf computes the fingerprint for an item's payload.
// Text and links compare byte-identical, colors case-insensitively,
// images by payload bytes, file lists by their paths in order.
func FingerprintOf(it *ClipboardItem) Fingerprint {
	d := xxhash.New()
	switch it.Type {
	case TypeImage:
		d.Write(it.ImageData)
	case TypeFile:
		for _, p := range it.FilePaths {
			d.WriteString(p)
			d.Write([]byte{0})
		}
	case TypeColor:
		d.WriteString(strings.ToLower(it.ColorHex))
	default:
		d.WriteString(it.Text)
	}
	return Fingerprint{Type: it.Type, Digest: d.Sum64()}
}

// Equal reports whether two fingerprints denote identical content.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Type == other.Type && f.Digest == other.Digest
}
