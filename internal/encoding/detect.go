// Package encoding decodes invoice sources written in legacy charsets to UTF-8.
package encoding

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// sniffLen bounds how much of the input the charset detector inspects.
const sniffLen = 4096

// ToUTF8 returns data as UTF-8 text.
//
// Detection order:
//  1. BOM (UTF-8 BOM stripped, UTF-16 LE/BE decoded)
//  2. valid UTF-8 is returned as-is
//  3. chardet heuristics
//  4. Windows-1252 fallback
func ToUTF8(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		return string(data[len(bomUTF8):]), nil
	}
	if bytes.HasPrefix(data, bomUTF16LE) {
		return decode(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), data)
	}
	if bytes.HasPrefix(data, bomUTF16BE) {
		return decode(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), data)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	return decode(detect(data), data)
}

// detect guesses a single-byte charset for data that is not valid UTF-8.
func detect(data []byte) encoding.Encoding {
	sample := data
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		switch result.Charset {
		case "ISO-8859-1", "windows-1252":
			return charmap.Windows1252
		case "ISO-8859-9":
			return charmap.ISO8859_9
		case "ISO-8859-15":
			return charmap.ISO8859_15
		}
	}
	return charmap.Windows1252
}

func decode(enc encoding.Encoding, data []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding input: %w", err)
	}
	return string(out), nil
}
