package renderer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/chai2010/webp"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/thumbhash"
	"golang.org/x/image/draw"
)

// MaxPlaceholderWidth caps upscaling of the tiny decoded placeholder.
const MaxPlaceholderWidth = 512

var ErrUnsupportedFormat = errors.New("unsupported placeholder format")

// encoder writes an image in one output format.
type encoder interface {
	Encode(w io.Writer, img image.Image) error
	ContentType() string
}

type pngEncoder struct{}

func (pngEncoder) Encode(w io.Writer, img image.Image) error { return png.Encode(w, img) }
func (pngEncoder) ContentType() string { return "image/png" }

// webpEncoder keeps placeholders lossless: they are already tiny and lossy
// artefacts show on smooth gradients.
type webpEncoder struct{}

func (webpEncoder) Encode(w io.Writer, img image.Image) error {
	return webp.Encode(w, img, &webp.Options{Lossless: true})
}
func (webpEncoder) ContentType() string { return "image/webp" }

type httpRenderer struct {
	encoders map[string]encoder
}

// compile-time check: *httpRenderer must satisfy port.HTTPRenderer
var _ port.HTTPRenderer = (*httpRenderer)(nil)

func NewHTTPRenderer() port.HTTPRenderer {
	return &httpRenderer{encoders: map[string]encoder{
		"png":  pngEncoder{},
		"webp": webpEncoder{},
	}}
}

func (r *httpRenderer) RenderJSON(v any) ([]byte, string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("json marshal: %w", err)
	}
	return raw, ETag(raw), nil
}

// ETag returns the quoted crc32 of raw.
func ETag(raw []byte) string {
	return fmt.Sprintf("\"%08x\"", crc32.ChecksumIEEE(raw))
}

func (r *httpRenderer) RenderPlaceholder(hash []byte, format string, width int) ([]byte, string, error) {
	enc, ok := r.encoders[format]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	img, err := thumbhash.Decode(hash)
	if err != nil {
		return nil, "", err
	}

	var out image.Image = img
	if width > 0 {
		out = scale(img, min(width, MaxPlaceholderWidth))
	}

	buf := &bytes.Buffer{}
	if err := enc.Encode(buf, out); err != nil {
		return nil, "", fmt.Errorf("encode %s placeholder: %w", format, err)
	}
	return buf.Bytes(), enc.ContentType(), nil
}

// scale resizes src to width, keeping its aspect ratio.
func scale(src *image.NRGBA, width int) image.Image {
	b := src.Bounds()
	if width == b.Dx() {
		return src
	}
	height := int(math.Max(1, math.Round(float64(width)*float64(b.Dy())/float64(b.Dx()))))
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
