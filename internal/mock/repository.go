package mock

import (
	"context"

	"github.com/fhuszti/katasu-ms-go/internal/model"
)

// MockUserRepo implements user repository operations for tests.
type MockUserRepo struct {
	UserRecord *model.User

	GetErr    error
	UpdateErr error

	GetCalls int
	Updated  *model.User
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.UserRecord, nil
}

func (m *MockUserRepo) Update(ctx context.Context, user *model.User) error {
	m.Updated = user
	return m.UpdateErr
}

// MockImageRepo implements image repository operations for tests.
type MockImageRepo struct {
	ImageRecord *model.Image
	Count       int
	ListOut     []model.Image

	GetErr    error
	DeleteErr error
	CountErr  error
	ListErr   error

	GetCalls     int
	CountCalls   int
	ListCalls    int
	DeleteCalled bool
	DeletedID    string
	ListLimit    int
	ListOffset   int
	ListTagID    string
}

func (m *MockImageRepo) GetByID(ctx context.Context, id string) (*model.Image, error) {
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.ImageRecord, nil
}

func (m *MockImageRepo) Delete(ctx context.Context, id string) error {
	m.DeleteCalled = true
	m.DeletedID = id
	return m.DeleteErr
}

func (m *MockImageRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	m.CountCalls++
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.Count, nil
}

func (m *MockImageRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]model.Image, error) {
	m.ListCalls++
	m.ListLimit = limit
	m.ListOffset = offset
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if limit < len(m.ListOut) {
		return m.ListOut[:limit], nil
	}
	return m.ListOut, nil
}

func (m *MockImageRepo) ListByUserAndTag(ctx context.Context, userID, tagID string) ([]model.Image, error) {
	m.ListCalls++
	m.ListTagID = tagID
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

// MockTagRepo implements tag repository operations for tests.
type MockTagRepo struct {
	ListOut   []model.Tag
	ListErr   error
	ListCalls int
	Order     model.TagOrder
}

func (m *MockTagRepo) ListByUserID(ctx context.Context, userID string, order model.TagOrder) ([]model.Tag, error) {
	m.ListCalls++
	m.Order = order
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}
