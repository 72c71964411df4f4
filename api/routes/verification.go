package routes

import (
	"github.com/gofiber/fiber/v2"
	verification_controller "github.com/sunthewhat/academic-cert-api/api/controllers/verification"
)

func SetupVerificationRoutes(router fiber.Router, ctrl *verification_controller.VerificationController) {
	router.Post("verify", ctrl.Verify)
}

// SetupPublicVerifyRoutes serves the address printed in every QR code.
func SetupPublicVerifyRoutes(router fiber.Router, ctrl *verification_controller.VerificationController) {
	router.Get("verify/*", ctrl.Public)
}
