// Package converters holds the pure value conversions between the CCI
// client representations and Go values: hex-encoded bit columns, '0'/'1'
// bit-string packing, temporal structs and numeric text.
package converters

import (
	"errors"
	"fmt"
)

// DecodeHexBytes converts the hex text a BIT/VARBIT column arrives as into
// raw bytes. Digits are consumed in pairs; a trailing unpaired digit is
// dropped the way the transport's own length accounting drops it.
func DecodeHexBytes(text string) ([]byte, error) {
	out := make([]byte, 0, len(text)/2)
	for i := 0; i+1 < len(text); i += 2 {
		hi, err := hexDigit(text[i])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(text[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, hi<<4|lo)
	}
	return out, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("converters: invalid hex digit %q", c)
}

// EncodeHexBytes is the inverse of DecodeHexBytes, two uppercase digits per
// byte.
func EncodeHexBytes(data []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, len(data)*2)
	for _, b := range data {
		out = append(out, digits[b>>4], digits[b&0xF])
	}
	return string(out)
}

// BitsToBinaryString renders raw bytes as a '0'/'1' string, eight characters
// per byte, most significant bit first.
func BitsToBinaryString(data []byte) string {
	out := make([]byte, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			if b&(1<<i) != 0 {
				out = append(out, '1')
			} else {
				out = append(out, '0')
			}
		}
	}
	return string(out)
}

// PackBitString packs a '0'/'1' string into bytes. The last character is the
// least significant bit of the last byte; a length that is not a multiple of
// eight leaves the leading bits of the first byte zero. Any character other
// than '0' or '1' fails.
func PackBitString(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, errors.New("converters: empty bit string")
	}
	n := (len(s) + 7) / 8
	out := make([]byte, n)
	for i := 0; i < len(s); i++ {
		c := s[len(s)-1-i]
		switch c {
		case '1':
			out[n-1-i/8] |= 1 << (i % 8)
		case '0':
		default:
			return nil, fmt.Errorf("converters: invalid bit character %q", c)
		}
	}
	return out, nil
}
