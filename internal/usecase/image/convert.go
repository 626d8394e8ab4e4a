package image

import (
	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/thumbhash"
)

// placeholder holds what the browser shows while the real image loads.
type placeholder struct {
	dataURL      string
	luminance    float64
	averageColor string
}

// placeholderOf decodes the stored thumbhash. A missing or malformed hash
// gives an empty data URL and mid-grey luminance.
func placeholderOf(img *model.Image) placeholder {
	var hash []byte
	if img.Thumbhash != nil {
		hash = thumbhash.DecodeBase64(*img.Thumbhash)
	}
	p := placeholder{
		dataURL:   thumbhash.ToDataURL(hash),
		luminance: thumbhash.Luminance(hash),
	}
	if avg, err := thumbhash.AverageRGBA(hash); err == nil {
		p.averageColor = avg.Hex()
	}
	return p
}

func summarize(img *model.Image, strg port.Storage) port.ImageSummary {
	p := placeholderOf(img)
	return port.ImageSummary{
		ID:          img.ID,
		Title:       img.Title,
		URL:         strg.PublicURL(img.Bucket, img.ObjectKey),
		Width:       img.Width,
		Height:      img.Height,
		Placeholder: p.dataURL,
		Luminance:   p.luminance,
	}
}

func summarizeAll(imgs []model.Image, strg port.Storage) []port.ImageSummary {
	out := make([]port.ImageSummary, 0, len(imgs))
	for i := range imgs {
		out = append(out, summarize(&imgs[i], strg))
	}
	return out
}
