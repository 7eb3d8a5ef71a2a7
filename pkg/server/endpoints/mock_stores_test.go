package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/arxivtools/paperbot/pkg/server/store"
)

// MockPapersStore implements store.PapersStore for testing using testify/mock
type MockPapersStore struct {
	mock.Mock
}

func NewMockPapersStore() *MockPapersStore {
	return &MockPapersStore{}
}

func (m *MockPapersStore) SavePaper(paper *store.Paper) error {
	args := m.Called(paper)
	return args.Error(0)
}

func (m *MockPapersStore) ListPapers(search string, limit, offset int) ([]store.Paper, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Paper), args.Error(1)
}

func (m *MockPapersStore) FetchPaper(arxivID string) (*store.Paper, error) {
	args := m.Called(arxivID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Paper), args.Error(1)
}

func (m *MockPapersStore) CountPapers(search string) (int64, error) {
	args := m.Called(search)
	return args.Get(0).(int64), args.Error(1)
}

// MockRunsStore implements store.RunsStore for testing using testify/mock
type MockRunsStore struct {
	mock.Mock
}

func NewMockRunsStore() *MockRunsStore {
	return &MockRunsStore{}
}

func (m *MockRunsStore) StartRun(keywords, trigger string) (*store.FetchRun, error) {
	args := m.Called(keywords, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FetchRun), args.Error(1)
}

func (m *MockRunsStore) FinishRun(id uint, found, saved, skipped int, runErr error) error {
	args := m.Called(id, found, saved, skipped, runErr)
	return args.Error(0)
}

func (m *MockRunsStore) ListRuns(limit int) ([]store.FetchRun, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.FetchRun), args.Error(1)
}

func (m *MockRunsStore) LastRun() (*store.FetchRun, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.FetchRun), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
