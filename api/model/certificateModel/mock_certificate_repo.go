package certificatemodel

import "github.com/sunthewhat/academic-cert-api/type/shared/model"

// ICertificateRepository defines the interface for certificate repository operations
type ICertificateRepository interface {
	CountByIssuer(institutionId uint, variant string) (int64, error)
	GetByCertificateId(certificateId string) (*model.Certificate, error)
	Upsert(cert *model.Certificate) (bool, error)
	ListByInstitution(institutionId uint) ([]*model.Certificate, error)
	ListByStudent(studentId uint) ([]*model.Certificate, error)
	Revoke(certificateId string) (*model.Certificate, error)
}

// Ensure CertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*CertificateRepository)(nil)

// MockCertificateRepository is a mock implementation for testing
type MockCertificateRepository struct {
	CountByIssuerFunc      func(institutionId uint, variant string) (int64, error)
	GetByCertificateIdFunc func(certificateId string) (*model.Certificate, error)
	UpsertFunc             func(cert *model.Certificate) (bool, error)
	ListByInstitutionFunc  func(institutionId uint) ([]*model.Certificate, error)
	ListByStudentFunc      func(studentId uint) ([]*model.Certificate, error)
	RevokeFunc             func(certificateId string) (*model.Certificate, error)
}

// Ensure MockCertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*MockCertificateRepository)(nil)

// NewMockCertificateRepository creates a new mock repository
func NewMockCertificateRepository() *MockCertificateRepository {
	return &MockCertificateRepository{}
}

func (m *MockCertificateRepository) CountByIssuer(institutionId uint, variant string) (int64, error) {
	if m.CountByIssuerFunc != nil {
		return m.CountByIssuerFunc(institutionId, variant)
	}
	return 0, nil
}

func (m *MockCertificateRepository) GetByCertificateId(certificateId string) (*model.Certificate, error) {
	if m.GetByCertificateIdFunc != nil {
		return m.GetByCertificateIdFunc(certificateId)
	}
	return nil, nil
}

func (m *MockCertificateRepository) Upsert(cert *model.Certificate) (bool, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(cert)
	}
	return true, nil
}

func (m *MockCertificateRepository) ListByInstitution(institutionId uint) ([]*model.Certificate, error) {
	if m.ListByInstitutionFunc != nil {
		return m.ListByInstitutionFunc(institutionId)
	}
	return nil, nil
}

func (m *MockCertificateRepository) ListByStudent(studentId uint) ([]*model.Certificate, error) {
	if m.ListByStudentFunc != nil {
		return m.ListByStudentFunc(studentId)
	}
	return nil, nil
}

func (m *MockCertificateRepository) Revoke(certificateId string) (*model.Certificate, error) {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(certificateId)
	}
	return nil, nil
}
