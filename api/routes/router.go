package routes

import (
	"github.com/gofiber/fiber/v2"
	auth_controller "github.com/sunthewhat/academic-cert-api/api/controllers/auth"
	certificate_controller "github.com/sunthewhat/academic-cert-api/api/controllers/certificate"
	verification_controller "github.com/sunthewhat/academic-cert-api/api/controllers/verification"
	"github.com/sunthewhat/academic-cert-api/api/middleware"
)

type Controllers struct {
	Auth         *auth_controller.AuthController
	Certificate  *certificate_controller.CertificateController
	Verification *verification_controller.VerificationController
}

func Init(router fiber.Router, ctrls Controllers, secret []byte) {
	SetupPublicVerifyRoutes(router, ctrls.Verification)

	api := router.Group("api")

	SetupAuthRoutes(api, ctrls.Auth)
	SetupVerificationRoutes(api, ctrls.Verification)

	SetupCertificateRoutes(api, middleware.Jwt(secret), ctrls.Certificate, ctrls.Verification)
}
