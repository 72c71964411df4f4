package auth_controller

import (
	"time"

	institutionmodel "github.com/sunthewhat/academic-cert-api/api/model/institutionModel"
	studentmodel "github.com/sunthewhat/academic-cert-api/api/model/studentModel"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

type AuthController struct {
	institutionRepo institutionmodel.IInstitutionRepository
	studentRepo     studentmodel.IStudentRepository
	secret          []byte
}

func NewAuthController(institutionRepo institutionmodel.IInstitutionRepository, studentRepo studentmodel.IStudentRepository, secret []byte) *AuthController {
	return &AuthController{
		institutionRepo: institutionRepo,
		studentRepo:     studentRepo,
		secret:          secret,
	}
}

func (ctrl *AuthController) token(p shared.Principal) (string, error) {
	return util.SignAuthToken(ctrl.secret, p, time.Now())
}
