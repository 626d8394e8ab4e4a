package port

// HTTPRenderer turns use case outputs into response bodies.
type HTTPRenderer interface {
	// RenderJSON encodes v and returns it with a quoted ETag derived from the bytes.
	RenderJSON(v any) ([]byte, string, error)
	// RenderPlaceholder decodes a thumbhash into an image of the given format
	// ("png" or "webp"), scaled to width when width > 0. It returns the body
	// and its content type.
	RenderPlaceholder(hash []byte, format string, width int) ([]byte, string, error)
}
