package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-md2invoice/internal/encoding"
)

func TestToUTF8_UTF8Passthrough(t *testing.T) {
	input := "Recipient Name: Café Crème\nLine Item: Développement, 2025-1-2, 5, 500.00\n"

	got, err := encoding.ToUTF8([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

func TestToUTF8_StripsUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Invoice ID: INV-1\n")...)

	got, err := encoding.ToUTF8(data)
	require.NoError(t, err)
	assert.Equal(t, "Invoice ID: INV-1\n", got)
}

func TestToUTF8_UTF16LE(t *testing.T) {
	// "Total:" in UTF-16 LE with BOM.
	data := []byte{0xFF, 0xFE, 'T', 0, 'o', 0, 't', 0, 'a', 0, 'l', 0, ':', 0}

	got, err := encoding.ToUTF8(data)
	require.NoError(t, err)
	assert.Equal(t, "Total:", got)
}

func TestToUTF8_UTF16BE(t *testing.T) {
	data := []byte{0xFE, 0xFF, 0, 'D', 0, 'a', 0, 't', 0, 'e'}

	got, err := encoding.ToUTF8(data)
	require.NoError(t, err)
	assert.Equal(t, "Date", got)
}

func TestToUTF8_Windows1252(t *testing.T) {
	// "Café Crème" in Windows-1252: é = 0xE9, è = 0xE8.
	data := []byte{'C', 'a', 'f', 0xE9, ' ', 'C', 'r', 0xE8, 'm', 'e'}

	got, err := encoding.ToUTF8(data)
	require.NoError(t, err)
	assert.Equal(t, "Café Crème", got)
}

func TestToUTF8_Empty(t *testing.T) {
	got, err := encoding.ToUTF8(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
