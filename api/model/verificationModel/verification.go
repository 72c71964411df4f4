package verificationmodel

import (
	"log/slog"

	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/gorm"
)

// VerificationRepository is append-only: logs are created and read, never
// updated.
type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(entry *model.VerificationLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		slog.Error("VerificationLog Create", "error", err, "cert_id", entry.CertificateID)
		return err
	}
	return nil
}

func (r *VerificationRepository) ListByCertificate(certificateId string) ([]*model.VerificationLog, error) {
	var logs []*model.VerificationLog
	err := r.db.Where("certificate_id = ?", certificateId).
		Order("verification_date DESC, id DESC").
		Find(&logs).Error
	if err != nil {
		slog.Error("VerificationLog ListByCertificate", "error", err, "cert_id", certificateId)
		return nil, err
	}
	return logs, nil
}
