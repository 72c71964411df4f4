package shared

import "github.com/sunthewhat/academic-cert-api/type/shared/model"

type Role string

const (
	RoleInstitution Role = "institution"
	RoleStudent     Role = "student"
)

// Principal is the authenticated caller. It is built from the request token
// and handed to every ownership check explicitly.
type Principal struct {
	ID    uint
	Role  Role
	Email string
}

func (p Principal) IsInstitution() bool { return p.Role == RoleInstitution }

func (p Principal) IsStudent() bool { return p.Role == RoleStudent }

// Owns reports whether the principal may read the certificate: the issuing
// institution or the student it was issued to.
func (p Principal) Owns(cert *model.Certificate) bool {
	if cert == nil {
		return false
	}
	switch p.Role {
	case RoleInstitution:
		return cert.InstitutionID == p.ID
	case RoleStudent:
		return cert.StudentID == p.ID
	}
	return false
}
