package mock

import (
	"context"

	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
)

// MockUserGetter implements port.UserGetter for tests.
type MockUserGetter struct {
	Out result.Result[*port.PublicUserOutput]
	ID  string
}

func (m *MockUserGetter) GetPublicUser(ctx context.Context, id string) result.Result[*port.PublicUserOutput] {
	m.ID = id
	return m.Out
}

// MockUserUpdater implements port.UserUpdater for tests.
type MockUserUpdater struct {
	Err    error
	In     port.UpdateUserInput
	Called bool
}

func (m *MockUserUpdater) UpdateUser(ctx context.Context, in port.UpdateUserInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// MockTagLister implements port.TagLister for tests.
type MockTagLister struct {
	Out   result.Result[[]port.TagOutput]
	Order model.TagOrder
}

func (m *MockTagLister) ListTags(ctx context.Context, userID string, order model.TagOrder) result.Result[[]port.TagOutput] {
	m.Order = order
	return m.Out
}

// MockImageCounter implements port.ImageCounter for tests.
type MockImageCounter struct {
	Out result.Result[int]
}

func (m *MockImageCounter) CountImages(ctx context.Context, userID string) result.Result[int] {
	return m.Out
}

// MockImageLister implements port.ImageLister for tests.
type MockImageLister struct {
	PageOut result.Result[port.ImagePage]
	TagOut  result.Result[[]port.ImageSummary]

	Page  int
	TagID string
}

func (m *MockImageLister) ListUserImages(ctx context.Context, userID string, page int) result.Result[port.ImagePage] {
	m.Page = page
	return m.PageOut
}

func (m *MockImageLister) ListTagImages(ctx context.Context, userID, tagID string) result.Result[[]port.ImageSummary] {
	m.TagID = tagID
	return m.TagOut
}

// MockImageGetter implements port.ImageGetter for tests.
type MockImageGetter struct {
	Out    result.Result[*port.ImageOutput]
	Called bool
}

func (m *MockImageGetter) GetImage(ctx context.Context, id string) result.Result[*port.ImageOutput] {
	m.Called = true
	return m.Out
}

// MockDownloadLinkGenerator implements port.DownloadLinkGenerator for tests.
type MockDownloadLinkGenerator struct {
	Out string
	Err error
}

func (m *MockDownloadLinkGenerator) GenerateDownloadLink(ctx context.Context, id string) (string, error) {
	return m.Out, m.Err
}

// MockImageDeleter implements port.ImageDeleter for tests.
type MockImageDeleter struct {
	Err    error
	In     port.DeleteImageInput
	Called bool
}

func (m *MockImageDeleter) DeleteImage(ctx context.Context, in port.DeleteImageInput) error {
	m.Called = true
	m.In = in
	return m.Err
}

// MockFilePurger implements port.FilePurger for tests.
type MockFilePurger struct {
	Err    error
	In     port.PurgeFilesInput
	Called bool
}

func (m *MockFilePurger) PurgeFiles(ctx context.Context, in port.PurgeFilesInput) error {
	m.Called = true
	m.In = in
	return m.Err
}
