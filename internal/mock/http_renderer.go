package mock

// MockHTTPRenderer implements port.HTTPRenderer for tests.
type MockHTTPRenderer struct {
	Data        []byte
	Etag        string
	ContentType string
	Err         error

	Called bool
	Format string
	Width  int
	Hash   []byte
}

func (m *MockHTTPRenderer) RenderJSON(v any) ([]byte, string, error) {
	m.Called = true
	return m.Data, m.Etag, m.Err
}

func (m *MockHTTPRenderer) RenderPlaceholder(hash []byte, format string, width int) ([]byte, string, error) {
	m.Called = true
	m.Hash = hash
	m.Format = format
	m.Width = width
	return m.Data, m.ContentType, m.Err
}
