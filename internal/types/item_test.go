package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemAssignsIDAndSize(t *testing.T) {
	a := NewItem(TypeText, ClipboardItem{Text: "hello"})
	b := NewItem(TypeText, ClipboardItem{Text: "hello"})

	require.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "ids must be unique")
	assert.Equal(t, int64(5), a.DataSize)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestPayloadSizePerType(t *testing.T) {
	tests := []struct {
		name string
		item *ClipboardItem
		want int64
	}{
		{"text", NewItem(TypeText, ClipboardItem{Text: "abcd"}), 4},
		{"image", NewItem(TypeImage, ClipboardItem{ImageData: make([]byte, 1024)}), 1024},
		{"color", NewItem(TypeColor, ClipboardItem{ColorHex: "#ff0000"}), 7},
		{"files", NewItem(TypeFile, ClipboardItem{FilePaths: []string{"/a", "/bc"}}), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.DataSize)
		})
	}
}

func TestContentTypeValid(t *testing.T) {
	for _, typ := range AllContentTypes {
		assert.True(t, typ.Valid())
	}
	assert.False(t, ContentType("html").Valid())
	assert.False(t, ContentType("").Valid())
}

func TestFingerprintTextByteIdentical(t *testing.T) {
	a := NewItem(TypeText, ClipboardItem{Text: "Hello"})
	b := NewItem(TypeText, ClipboardItem{Text: "Hello"})
	c := NewItem(TypeText, ClipboardItem{Text: "hello"})

	assert.True(t, FingerprintOf(a).Equal(FingerprintOf(b)))
	assert.False(t, FingerprintOf(a).Equal(FingerprintOf(c)), "text comparison is byte-identical")
}

func TestFingerprintColorCaseInsensitive(t *testing.T) {
	a := NewItem(TypeColor, ClipboardItem{ColorHex: "#FFAA00"})
	b := NewItem(TypeColor, ClipboardItem{ColorHex: "#ffaa00"})

	assert.True(t, FingerprintOf(a).Equal(FingerprintOf(b)))
}

func TestFingerprintFileOrderSensitive(t *testing.T) {
	a := NewItem(TypeFile, ClipboardItem{FilePaths: []string{"/a", "/b"}})
	b := NewItem(TypeFile, ClipboardItem{FilePaths: []string{"/a", "/b"}})
	c := NewItem(TypeFile, ClipboardItem{FilePaths: []string{"/b", "/a"}})

	assert.True(t, FingerprintOf(a).Equal(FingerprintOf(b)))
	assert.False(t, FingerprintOf(a).Equal(FingerprintOf(c)), "path lists match in order")
}

func TestFingerprintDistinguishesTypes(t *testing.T) {
	text := NewItem(TypeText, ClipboardItem{Text: "#fff"})
	color := NewItem(TypeColor, ClipboardItem{ColorHex: "#fff"})

	assert.False(t, FingerprintOf(text).Equal(FingerprintOf(color)))
}

func TestFingerprintImageByPayloadBytes(t *testing.T) {
	img1 := NewItem(TypeImage, ClipboardItem{ImageData: []byte{1, 2, 3}})
	img2 := NewItem(TypeImage, ClipboardItem{ImageData: []byte{1, 2, 3}})
	img3 := NewItem(TypeImage, ClipboardItem{ImageData: []byte{1, 2, 4}})

	assert.True(t, FingerprintOf(img1).Equal(FingerprintOf(img2)))
	assert.False(t, FingerprintOf(img1).Equal(FingerprintOf(img3)))
}

func TestSettingsAppIgnored(t *testing.T) {
	s := Settings{IgnoredApps: []string{"com.apple.keychainaccess"}}

	assert.True(t, s.AppIgnored("com.apple.keychainaccess"))
	assert.False(t, s.AppIgnored("com.example.editor"))
	assert.False(t, s.AppIgnored(""), "missing provenance is never ignored")
}
