package batchmodel

import "sync"

// IBatchRepository defines the interface for batch report storage
type IBatchRepository interface {
	Create(report *BatchReport) error
	Save(report *BatchReport) error
	GetById(id string) (*BatchReport, error)
}

var _ IBatchRepository = (*BatchRepository)(nil)

// MockBatchRepository is a mock implementation for testing. Without Func
// overrides it keeps reports in memory.
type MockBatchRepository struct {
	CreateFunc  func(report *BatchReport) error
	SaveFunc    func(report *BatchReport) error
	GetByIdFunc func(id string) (*BatchReport, error)

	mu      sync.Mutex
	reports map[string]BatchReport
}

var _ IBatchRepository = (*MockBatchRepository)(nil)

func NewMockBatchRepository() *MockBatchRepository {
	return &MockBatchRepository{reports: map[string]BatchReport{}}
}

func (m *MockBatchRepository) Create(report *BatchReport) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(report)
	}
	return m.store(report)
}

func (m *MockBatchRepository) Save(report *BatchReport) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(report)
	}
	return m.store(report)
}

func (m *MockBatchRepository) GetById(id string) (*BatchReport, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *MockBatchRepository) store(report *BatchReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reports == nil {
		m.reports = map[string]BatchReport{}
	}
	m.reports[report.ID] = *report
	return nil
}
