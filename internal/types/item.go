package types

import (
	"time"

	"github.com/google/uuid"
)

// ContentType identifies the single payload kind a ClipboardItem carries.
type ContentType string

const (
	TypeText  ContentType = "text"
	TypeImage ContentType = "image"
	TypeLink  ContentType = "link"
	TypeColor ContentType = "color"
	TypeFile  ContentType = "file"
)

// AllContentTypes lists every valid content type, used for flag validation.
var AllContentTypes = []ContentType{TypeText, TypeImage, TypeLink, TypeColor, TypeFile}

// Valid reports whether t is one of the five known content types.
func (t ContentType) Valid() bool {
	switch t {
	case TypeText, TypeImage, TypeLink, TypeColor, TypeFile:
		return true
	}
	return false
}

// ClipboardItem is one captured clipboard entry. Exactly one payload field
// is populated, matching Type. Items are immutable after creation except
// for the Pinned flag.
type ClipboardItem struct {
	ID        string      `json:"id"`
	Type      ContentType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	Pinned    bool        `json:"pinned"`

	Text      string   `json:"text,omitempty"`       // text, link
	ImageData []byte   `json:"image_data,omitempty"` // image; stripped to a blob ref when persisted
	FilePaths []string `json:"file_paths,omitempty"` // file, ordered
	ColorHex  string   `json:"color_hex,omitempty"`  // color

	SourceAppBundleID string `json:"source_app_bundle_id,omitempty"`
	SourceAppName     string `json:"source_app_name,omitempty"`

	DataSize int64 `json:"data_size"`
}

// NewItem builds an item with a fresh id and computed payload size.
// The payload fields must already be set consistently with typ.
func NewItem(typ ContentType, item ClipboardItem) *ClipboardItem {
	item.ID = uuid.New().String()
	item.Type = typ
	item.CreatedAt = time.Now()
	item.DataSize = payloadSize(&item)
	return &item
}

// payloadSize computes the byte size of whichever payload field is set.
func payloadSize(it *ClipboardItem) int64 {
	switch it.Type {
	case TypeImage:
		return int64(len(it.ImageData))
	case TypeFile:
		var n int64
		for _, p := range it.FilePaths {
			n += int64(len(p))
		}
		return n
	case TypeColor:
		return int64(len(it.ColorHex))
	default:
		return int64(len(it.Text))
	}
}

// Clone returns a shallow copy safe to hand to readers. The payload slices
// are never mutated after creation, so sharing them is fine.
func (it *ClipboardItem) Clone() *ClipboardItem {
	cp := *it
	return &cp
}
