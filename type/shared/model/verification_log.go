package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	MatchValid   = "valid"
	MatchInvalid = "invalid"
)

// VerificationLog rows are written once and never updated.
type VerificationLog struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	VerifierEmail    string         `gorm:"size:120" json:"verifier_email"`
	CertificateID    string         `gorm:"size:100;index" json:"certificate_id"`
	UploadedHash     string         `gorm:"size:64" json:"uploaded_hash"`
	OriginalHash     string         `gorm:"size:64" json:"original_hash"`
	MatchStatus      string         `gorm:"size:20" json:"match_status"`
	TamperScore      *float64       `gorm:"column:ai_tamper_score" json:"tamper_score,omitempty"`
	TamperDetails    datatypes.JSON `json:"tamper_details,omitempty"`
	VerificationDate time.Time      `gorm:"autoCreateTime" json:"verification_date"`
}

func (VerificationLog) TableName() string { return "verification_logs" }
