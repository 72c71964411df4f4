package verificationmodel

import "github.com/sunthewhat/academic-cert-api/type/shared/model"

// IVerificationRepository defines the interface for verification log operations
type IVerificationRepository interface {
	Create(entry *model.VerificationLog) error
	ListByCertificate(certificateId string) ([]*model.VerificationLog, error)
}

var _ IVerificationRepository = (*VerificationRepository)(nil)

// MockVerificationRepository is a mock implementation for testing
type MockVerificationRepository struct {
	CreateFunc            func(entry *model.VerificationLog) error
	ListByCertificateFunc func(certificateId string) ([]*model.VerificationLog, error)
}

var _ IVerificationRepository = (*MockVerificationRepository)(nil)

func NewMockVerificationRepository() *MockVerificationRepository {
	return &MockVerificationRepository{}
}

func (m *MockVerificationRepository) Create(entry *model.VerificationLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(entry)
	}
	return nil
}

func (m *MockVerificationRepository) ListByCertificate(certificateId string) ([]*model.VerificationLog, error) {
	if m.ListByCertificateFunc != nil {
		return m.ListByCertificateFunc(certificateId)
	}
	return nil, nil
}
