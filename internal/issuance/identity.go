package issuance

import (
	"fmt"
	"strings"

	studentmodel "github.com/sunthewhat/academic-cert-api/api/model/studentModel"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

const (
	// PlaceholderPassword is the credential given to students created by an
	// upload. They are expected to change it on first login.
	PlaceholderPassword = "student123"

	syntheticDomain = "@temp.com"
	unknownName     = "Unknown"
)

// CertificateID formats VARIANT/YYYY/III/NNNN.
func CertificateID(variant string, year int, institutionID uint, sequence int64) string {
	return fmt.Sprintf("%s/%d/%03d/%04d", strings.ToUpper(variant), year, institutionID, sequence)
}

// SyntheticEmail reports whether email was made up for a row without one.
func SyntheticEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), syntheticDomain)
}

// resolver finds or creates the student a row is issued to.
type resolver struct {
	students studentmodel.IStudentRepository
	// credential returns the hashed placeholder password, computed at most
	// once per batch.
	credential func() (string, error)
}

// resolve looks the student up by email, then by student id. slot is the
// row's 0-based position offset by the issuer's existing certificate count and
// numbers synthesized emails and student ids.
func (r *resolver) resolve(fields map[string]string, slot int64) (*model.Student, error) {
	email := strings.TrimSpace(fields["email"])
	studentID := strings.TrimSpace(fields["student_id"])

	switch {
	case email != "":
		s, err := r.students.GetByEmail(email)
		if err != nil || s != nil {
			return s, err
		}
	case studentID != "":
		s, err := r.students.GetByStudentId(studentID)
		if err != nil || s != nil {
			return s, err
		}
		email = fmt.Sprintf("student%d%s", slot, syntheticDomain)
	default:
		email = fmt.Sprintf("student%d%s", slot, syntheticDomain)
		s, err := r.students.GetByEmail(email)
		if err != nil || s != nil {
			return s, err
		}
	}

	if studentID == "" {
		studentID = fmt.Sprintf("STU%04d", slot)
	}
	name := strings.TrimSpace(fields["name"])
	if name == "" {
		name = unknownName
	}
	hash, err := r.credential()
	if err != nil {
		return nil, err
	}

	s := &model.Student{
		StudentID:    studentID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        fields["phone"],
		Dob:          fields["dob"],
	}
	if err := r.students.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}
