package verification

import (
	"time"

	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

// PublicCertificate is the part of a certificate anyone holding its id may
// see. The row payload and the student's contact details are never included.
type PublicCertificate struct {
	CertificateID   string    `json:"certificate_id"`
	CertificateType string    `json:"certificate_type"`
	StudentName     string    `json:"student_name,omitempty"`
	InstitutionName string    `json:"institution_name,omitempty"`
	IssueDate       time.Time `json:"issue_date"`
	Status          string    `json:"status"`
	HashCode        string    `json:"hash_code"`
}

func PublicView(cert *model.Certificate) *PublicCertificate {
	view := &PublicCertificate{
		CertificateID:   cert.CertificateID,
		CertificateType: cert.Variant,
		IssueDate:       cert.IssueDate,
		Status:          cert.Status,
		HashCode:        cert.HashCode,
	}
	if cert.Student != nil {
		view.StudentName = cert.Student.Name
	}
	if cert.Institution != nil {
		view.InstitutionName = cert.Institution.Name
	}
	return view
}
