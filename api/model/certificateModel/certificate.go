package certificatemodel

import (
	"errors"
	"log/slog"

	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/gorm"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// CountByIssuer counts the certificates an institution has issued of one
// variant. It seeds the sequence part of new certificate ids.
func (r *CertificateRepository) CountByIssuer(institutionId uint, variant string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Certificate{}).
		Where("institution_id = ? AND certificate_type = ?", institutionId, variant).
		Count(&count).Error
	if err != nil {
		slog.Error("Certificate CountByIssuer", "error", err, "institution_id", institutionId, "variant", variant)
		return 0, err
	}
	return count, nil
}

// GetByCertificateId loads a certificate with its student and institution.
// A missing certificate yields nil, nil.
func (r *CertificateRepository) GetByCertificateId(certificateId string) (*model.Certificate, error) {
	var cert model.Certificate
	err := r.db.Preload("Student").Preload("Institution").
		Where("certificate_id = ?", certificateId).
		First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("Certificate GetByCertificateId", "error", err, "cert_id", certificateId)
		return nil, err
	}
	return &cert, nil
}

// Upsert inserts cert or, when its certificate id already exists, overwrites
// the stored payload, artifacts, hash and issue date in place. Status is left
// untouched on update. created reports which of the two happened.
func (r *CertificateRepository) Upsert(cert *model.Certificate) (created bool, err error) {
	var existing model.Certificate
	findErr := r.db.Where("certificate_id = ?", cert.CertificateID).First(&existing).Error
	if errors.Is(findErr, gorm.ErrRecordNotFound) {
		if err := r.db.Create(cert).Error; err != nil {
			slog.Error("Certificate Upsert create", "error", err, "cert_id", cert.CertificateID)
			return false, err
		}
		return true, nil
	}
	if findErr != nil {
		slog.Error("Certificate Upsert find", "error", findErr, "cert_id", cert.CertificateID)
		return false, findErr
	}

	updates := map[string]any{
		"student_id":       cert.StudentID,
		"institution_id":   cert.InstitutionID,
		"certificate_type": cert.Variant,
		"certificate_data": cert.Payload,
		"pdf_path":         cert.PDFPath,
		"hash_code":        cert.HashCode,
		"qr_code":          cert.QRPath,
		"issue_date":       cert.IssueDate,
	}
	if err := r.db.Model(&existing).Updates(updates).Error; err != nil {
		slog.Error("Certificate Upsert update", "error", err, "cert_id", cert.CertificateID)
		return false, err
	}
	cert.ID = existing.ID
	cert.Status = existing.Status
	return false, nil
}

func (r *CertificateRepository) ListByInstitution(institutionId uint) ([]*model.Certificate, error) {
	return r.list("institution_id = ?", institutionId)
}

func (r *CertificateRepository) ListByStudent(studentId uint) ([]*model.Certificate, error) {
	return r.list("student_id = ?", studentId)
}

func (r *CertificateRepository) list(query string, arg any) ([]*model.Certificate, error) {
	var certs []*model.Certificate
	err := r.db.Preload("Student").Preload("Institution").
		Where(query, arg).
		Order("issue_date DESC, id DESC").
		Find(&certs).Error
	if err != nil {
		slog.Error("Certificate list", "error", err, "query", query)
		return nil, err
	}
	return certs, nil
}

// Revoke marks the certificate revoked. Unknown ids yield nil, nil.
func (r *CertificateRepository) Revoke(certificateId string) (*model.Certificate, error) {
	res := r.db.Model(&model.Certificate{}).
		Where("certificate_id = ?", certificateId).
		Update("status", model.CertificateRevoked)
	if res.Error != nil {
		slog.Error("Certificate Revoke", "error", res.Error, "cert_id", certificateId)
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByCertificateId(certificateId)
}
