package thumbhash

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
)

// neutralLuminance is reported when a hash carries no luminance at all.
const neutralLuminance = 0.5

const dataURLPrefix = "data:image/png;base64,"

// DecodeBase64 returns the raw hash bytes, or nil if text is empty or not valid
// standard base64. Unpadded input is accepted.
func DecodeBase64(text string) []byte {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if b, err := base64.StdEncoding.DecodeString(text); err == nil {
		return b
	}
	if b, err := base64.RawStdEncoding.DecodeString(text); err == nil {
		return b
	}
	return nil
}

// Luminance returns the average brightness of the image in [0,1], read from the
// 6-bit DC luminance field in the low bits of the first byte.
func Luminance(hash []byte) float64 {
	if len(hash) == 0 {
		return neutralLuminance
	}
	return float64(hash[0]&0x3f) / 63
}

// ToDataURL renders the hash as a PNG data URL. Malformed hashes yield "" so a
// page can fall back to a plain placeholder.
func ToDataURL(hash []byte) string {
	img, err := Decode(hash)
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ""
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())
}
