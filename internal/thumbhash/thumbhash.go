// Package thumbhash decodes ThumbHash placeholders.
//
// A hash packs a tiny DCT of the image in LPQ(A) colour space: a 24-bit header
// (DC luminance and chroma, luminance scale, alpha flag), a 16-bit header
// (luminance basis size, chroma scales, orientation), an optional alpha byte and
// 4-bit AC coefficients. Encoding happens at upload time elsewhere; this package
// only consumes hashes.
package thumbhash

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrMalformed is returned when a hash is too short or its header describes an
// impossible image.
var ErrMalformed = errors.New("thumbhash: malformed hash")

// maxSide is the longest side of a decoded placeholder, in pixels.
const maxSide = 32

type header struct {
	lDC, pDC, qDC float64
	lScale        float64
	pScale        float64
	qScale        float64
	aDC, aScale   float64
	hasAlpha      bool
	lx, ly        int
}

func readHeader(hash []byte) (header, error) {
	if len(hash) < 5 {
		return header{}, ErrMalformed
	}
	h24 := uint32(hash[0]) | uint32(hash[1])<<8 | uint32(hash[2])<<16
	h16 := uint32(hash[3]) | uint32(hash[4])<<8

	h := header{
		lDC:      float64(h24&63) / 63,
		pDC:      float64((h24>>6)&63)/31.5 - 1,
		qDC:      float64((h24>>12)&63)/31.5 - 1,
		lScale:   float64((h24>>18)&31) / 31,
		hasAlpha: h24>>23 != 0,
		pScale:   float64((h16>>3)&63) / 63,
		qScale:   float64((h16>>9)&63) / 63,
		aDC:      1,
	}

	isLandscape := h16>>15 != 0
	long := 7
	if h.hasAlpha {
		long = 5
	}
	if isLandscape {
		h.lx, h.ly = long, int(h16&7)
	} else {
		h.lx, h.ly = int(h16&7), long
	}
	h.lx = max(3, h.lx)
	h.ly = max(3, h.ly)

	if h.hasAlpha {
		if len(hash) < 6 {
			return header{}, ErrMalformed
		}
		h.aDC = float64(hash[5]&15) / 15
		h.aScale = float64(hash[5]>>4) / 15
	}
	return h, nil
}

// acReader walks the 4-bit AC coefficients, low nibble first.
type acReader struct {
	hash  []byte
	start int
	index int
}

func (r *acReader) channel(nx, ny int, scale float64) ([]float64, error) {
	var ac []float64
	for cy := 0; cy < ny; cy++ {
		cx := 0
		if cy == 0 {
			cx = 1
		}
		for ; cx*ny < nx*(ny-cy); cx++ {
			pos := r.start + r.index>>1
			if pos >= len(r.hash) {
				return nil, ErrMalformed
			}
			v := (r.hash[pos] >> ((r.index & 1) << 2)) & 15
			r.index++
			ac = append(ac, (float64(v)/7.5-1)*scale)
		}
	}
	return ac, nil
}

// AspectRatio returns the approximate width/height ratio encoded in the hash,
// or 0 when the hash is too short to carry one.
func AspectRatio(hash []byte) float64 {
	if len(hash) < 5 {
		return 0
	}
	hasAlpha := hash[2]&0x80 != 0
	isLandscape := hash[4]&0x80 != 0
	long := 7
	if hasAlpha {
		long = 5
	}
	var lx, ly int
	if isLandscape {
		lx, ly = long, int(hash[3]&7)
	} else {
		lx, ly = int(hash[3]&7), long
	}
	return float64(lx) / float64(ly)
}

// Decode renders the hash into a placeholder whose longest side is 32 pixels.
// The same input always yields the same pixels.
func Decode(hash []byte) (*image.NRGBA, error) {
	h, err := readHeader(hash)
	if err != nil {
		return nil, err
	}

	start := 5
	if h.hasAlpha {
		start = 6
	}
	rd := &acReader{hash: hash, start: start}

	lAC, err := rd.channel(h.lx, h.ly, h.lScale)
	if err != nil {
		return nil, err
	}
	// chroma is boosted to compensate for quantisation
	pAC, err := rd.channel(3, 3, h.pScale*1.25)
	if err != nil {
		return nil, err
	}
	qAC, err := rd.channel(3, 3, h.qScale*1.25)
	if err != nil {
		return nil, err
	}
	var aAC []float64
	if h.hasAlpha {
		if aAC, err = rd.channel(5, 5, h.aScale); err != nil {
			return nil, err
		}
	}

	ratio := AspectRatio(hash)
	if ratio <= 0 || math.IsInf(ratio, 0) {
		return nil, ErrMalformed
	}
	var w, ht int
	if ratio > 1 {
		w, ht = maxSide, int(math.Round(maxSide/ratio))
	} else {
		w, ht = int(math.Round(maxSide*ratio)), maxSide
	}
	if w == 0 || ht == 0 {
		return nil, ErrMalformed
	}

	minBasis := 3
	if h.hasAlpha {
		minBasis = 5
	}
	fx := make([]float64, max(h.lx, minBasis))
	fy := make([]float64, max(h.ly, minBasis))

	img := image.NewNRGBA(image.Rect(0, 0, w, ht))
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			l, p, q, a := h.lDC, h.pDC, h.qDC, h.aDC

			for cx := range fx {
				fx[cx] = math.Cos(math.Pi / float64(w) * (float64(x) + 0.5) * float64(cx))
			}
			for cy := range fy {
				fy[cy] = math.Cos(math.Pi / float64(ht) * (float64(y) + 0.5) * float64(cy))
			}

			j := 0
			for cy := 0; cy < h.ly; cy++ {
				fy2 := fy[cy] * 2
				cx := 0
				if cy == 0 {
					cx = 1
				}
				for ; cx*h.ly < h.lx*(h.ly-cy); cx++ {
					l += lAC[j] * fx[cx] * fy2
					j++
				}
			}

			j = 0
			for cy := 0; cy < 3; cy++ {
				fy2 := fy[cy] * 2
				cx := 0
				if cy == 0 {
					cx = 1
				}
				for ; cx < 3-cy; cx++ {
					f := fx[cx] * fy2
					p += pAC[j] * f
					q += qAC[j] * f
					j++
				}
			}

			if h.hasAlpha {
				j = 0
				for cy := 0; cy < 5; cy++ {
					fy2 := fy[cy] * 2
					cx := 0
					if cy == 0 {
						cx = 1
					}
					for ; cx < 5-cy; cx++ {
						a += aAC[j] * fx[cx] * fy2
						j++
					}
				}
			}

			r, g, b := lpqToRGB(l, p, q)
			i := img.PixOffset(x, y)
			img.Pix[i] = channelByte(r)
			img.Pix[i+1] = channelByte(g)
			img.Pix[i+2] = channelByte(b)
			img.Pix[i+3] = channelByte(a)
		}
	}
	return img, nil
}

// RGBA is a colour with components in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// AverageRGBA returns the DC colour of the hash, i.e. the average colour of the
// whole image.
func AverageRGBA(hash []byte) (RGBA, error) {
	if len(hash) < 3 {
		return RGBA{}, ErrMalformed
	}
	h24 := uint32(hash[0]) | uint32(hash[1])<<8 | uint32(hash[2])<<16
	l := float64(h24&63) / 63
	p := float64((h24>>6)&63)/31.5 - 1
	q := float64((h24>>12)&63)/31.5 - 1
	a := 1.0
	if h24>>23 != 0 {
		if len(hash) < 6 {
			return RGBA{}, ErrMalformed
		}
		a = float64(hash[5]&15) / 15
	}
	r, g, b := lpqToRGB(l, p, q)
	return RGBA{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: a}, nil
}

// Hex formats the colour as #rrggbb, ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func lpqToRGB(l, p, q float64) (r, g, b float64) {
	b = l - 2.0/3*p
	r = (3*l - b + q) / 2
	g = r - q
	return r, g, b
}

func channelByte(v float64) uint8 {
	return uint8(math.Max(0, 255*math.Min(1, v)))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
