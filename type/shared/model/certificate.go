package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CertificateActive  = "active"
	CertificateRevoked = "revoked"
)

type Certificate struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CertificateID string         `gorm:"size:100;uniqueIndex;not null" json:"certificate_id"`
	StudentID     uint           `gorm:"index;not null" json:"student_id"`
	Student       *Student       `gorm:"constraint:OnDelete:RESTRICT" json:"student,omitempty"`
	InstitutionID uint           `gorm:"index:idx_certificate_issuer;not null" json:"institution_id"`
	Institution   *Institution   `gorm:"constraint:OnDelete:RESTRICT" json:"institution,omitempty"`
	Variant       string         `gorm:"column:certificate_type;size:50;index:idx_certificate_issuer;not null" json:"certificate_type"`
	Payload       datatypes.JSON `gorm:"column:certificate_data" json:"certificate_data"`
	PDFPath       string         `gorm:"size:300" json:"-"`
	HashCode      string         `gorm:"size:64;not null" json:"hash_code"`
	QRPath        string         `gorm:"column:qr_code;size:300" json:"-"`
	IssueDate     time.Time      `json:"issue_date"`
	Status        string         `gorm:"size:20;default:active" json:"status"`
}

func (Certificate) TableName() string { return "certificates" }

func (c *Certificate) IsRevoked() bool { return c.Status == CertificateRevoked }
