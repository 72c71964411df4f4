package institutionmodel

import (
	"errors"
	"log/slog"

	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/gorm"
)

type InstitutionRepository struct {
	db *gorm.DB
}

func NewInstitutionRepository(db *gorm.DB) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

func (r *InstitutionRepository) Create(inst *model.Institution) error {
	if err := r.db.Create(inst).Error; err != nil {
		slog.Error("Institution Create", "error", err, "email", inst.Email)
		return err
	}
	return nil
}

func (r *InstitutionRepository) GetByEmail(email string) (*model.Institution, error) {
	var inst model.Institution
	err := r.db.Where("email = ?", email).First(&inst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Institution GetByEmail", "error", err, "email", email)
		return nil, err
	}
	return &inst, nil
}

func (r *InstitutionRepository) GetById(id uint) (*model.Institution, error) {
	var inst model.Institution
	err := r.db.First(&inst, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Institution GetById", "error", err, "institution_id", id)
		return nil, err
	}
	return &inst, nil
}
