package studentmodel

import (
	"errors"
	"log/slog"

	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts the student. Inside a transaction the insert is flushed
// immediately so s.ID is usable by rows that reference it.
func (r *StudentRepository) Create(s *model.Student) error {
	if err := r.db.Create(s).Error; err != nil {
		slog.Error("Student Create", "error", err, "email", s.Email)
		return err
	}
	return nil
}

func (r *StudentRepository) GetByEmail(email string) (*model.Student, error) {
	return r.first("email = ?", email)
}

func (r *StudentRepository) GetByStudentId(studentId string) (*model.Student, error) {
	return r.first("student_id = ?", studentId)
}

func (r *StudentRepository) GetById(id uint) (*model.Student, error) {
	return r.first("id = ?", id)
}

func (r *StudentRepository) first(query string, arg any) (*model.Student, error) {
	var s model.Student
	err := r.db.Where(query, arg).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Student lookup", "error", err, "query", query)
		return nil, err
	}
	return &s, nil
}
