package institutionmodel

import "github.com/sunthewhat/academic-cert-api/type/shared/model"

// IInstitutionRepository defines the interface for institution repository operations
type IInstitutionRepository interface {
	Create(inst *model.Institution) error
	GetByEmail(email string) (*model.Institution, error)
	GetById(id uint) (*model.Institution, error)
}

var _ IInstitutionRepository = (*InstitutionRepository)(nil)

// MockInstitutionRepository is a mock implementation for testing
type MockInstitutionRepository struct {
	CreateFunc     func(inst *model.Institution) error
	GetByEmailFunc func(email string) (*model.Institution, error)
	GetByIdFunc    func(id uint) (*model.Institution, error)
}

var _ IInstitutionRepository = (*MockInstitutionRepository)(nil)

func NewMockInstitutionRepository() *MockInstitutionRepository {
	return &MockInstitutionRepository{}
}

func (m *MockInstitutionRepository) Create(inst *model.Institution) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(inst)
	}
	return nil
}

func (m *MockInstitutionRepository) GetByEmail(email string) (*model.Institution, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(email)
	}
	return nil, nil
}

func (m *MockInstitutionRepository) GetById(id uint) (*model.Institution, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(id)
	}
	return nil, nil
}
