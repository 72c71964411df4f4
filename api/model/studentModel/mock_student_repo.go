package studentmodel

import "github.com/sunthewhat/academic-cert-api/type/shared/model"

// IStudentRepository defines the interface for student repository operations
type IStudentRepository interface {
	Create(s *model.Student) error
	GetByEmail(email string) (*model.Student, error)
	GetByStudentId(studentId string) (*model.Student, error)
	GetById(id uint) (*model.Student, error)
}

var _ IStudentRepository = (*StudentRepository)(nil)

// MockStudentRepository is a mock implementation for testing
type MockStudentRepository struct {
	CreateFunc         func(s *model.Student) error
	GetByEmailFunc     func(email string) (*model.Student, error)
	GetByStudentIdFunc func(studentId string) (*model.Student, error)
	GetByIdFunc        func(id uint) (*model.Student, error)
}

var _ IStudentRepository = (*MockStudentRepository)(nil)

func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{}
}

func (m *MockStudentRepository) Create(s *model.Student) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(s)
	}
	return nil
}

func (m *MockStudentRepository) GetByEmail(email string) (*model.Student, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(email)
	}
	return nil, nil
}

func (m *MockStudentRepository) GetByStudentId(studentId string) (*model.Student, error) {
	if m.GetByStudentIdFunc != nil {
		return m.GetByStudentIdFunc(studentId)
	}
	return nil, nil
}

func (m *MockStudentRepository) GetById(id uint) (*model.Student, error) {
	if m.GetByIdFunc != nil {
		return m.GetByIdFunc(id)
	}
	return nil, nil
}
