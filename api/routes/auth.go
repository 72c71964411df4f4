package routes

import (
	"github.com/gofiber/fiber/v2"
	auth_controller "github.com/sunthewhat/academic-cert-api/api/controllers/auth"
)

func SetupAuthRoutes(router fiber.Router, ctrl *auth_controller.AuthController) {
	authGroup := router.Group("auth")

	authGroup.Post("institution/register", ctrl.RegisterInstitution)
	authGroup.Post("student/register", ctrl.RegisterStudent)
	authGroup.Post("login", ctrl.Login)
}
