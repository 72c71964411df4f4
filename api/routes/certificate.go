package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/academic-cert-api/api/controllers/certificate"
	verification_controller "github.com/sunthewhat/academic-cert-api/api/controllers/verification"
	"github.com/sunthewhat/academic-cert-api/api/middleware"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

// Certificate ids contain slashes, so they are matched by the trailing
// wildcard of each route.
func SetupCertificateRoutes(router fiber.Router, auth fiber.Handler, ctrl *certificate_controller.CertificateController, verify *verification_controller.VerificationController) {
	certificateGroup := router.Group("certificate", auth)
	institutionOnly := middleware.RequireRole(shared.RoleInstitution)

	certificateGroup.Get("", ctrl.List)
	certificateGroup.Post("upload", institutionOnly, ctrl.Upload)
	certificateGroup.Get("batch/:batchId", institutionOnly, ctrl.Batch)
	certificateGroup.Get("download/*", ctrl.Download)
	certificateGroup.Get("view/*", ctrl.View)
	certificateGroup.Get("qr/*", ctrl.QR)
	certificateGroup.Get("verifications/*", verify.History)
	certificateGroup.Put("revoke/*", institutionOnly, ctrl.Revoke)
	certificateGroup.Get("detail/*", ctrl.GetById)
}
