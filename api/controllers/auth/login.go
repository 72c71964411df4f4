package auth_controller

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/type/payload"
	"github.com/sunthewhat/academic-cert-api/type/response"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

// account is what login needs from either kind of user.
type account struct {
	id       uint
	name     string
	email    string
	password string
}

func (ctrl *AuthController) lookup(role shared.Role, email string) (*account, error) {
	if role == shared.RoleInstitution {
		inst, err := ctrl.institutionRepo.GetByEmail(email)
		if inst == nil {
			return nil, err
		}
		return &account{id: inst.ID, name: inst.Name, email: inst.Email, password: inst.PasswordHash}, nil
	}
	student, err := ctrl.studentRepo.GetByEmail(email)
	if student == nil {
		return nil, err
	}
	return &account{id: student.ID, name: student.Name, email: student.Email, password: student.PasswordHash}, nil
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	body := new(payload.LoginPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	role := shared.Role(body.Role)
	acc, queryErr := ctrl.lookup(role, body.Email)
	if acc == nil {
		if queryErr != nil {
			slog.Error("Auth Login database query failed", "error", queryErr, "email", body.Email)
			return response.SendInternalError(c, queryErr)
		}
		slog.Info("Auth Login attempt with non-existent user", "email", body.Email, "role", role)
		return response.SendUnauthorized(c, "Invalid email or password")
	}

	if !util.CheckPassword(body.Password, acc.password) {
		slog.Warn("Auth Login failed password check", "email", body.Email, "role", role)
		return response.SendUnauthorized(c, "Invalid email or password")
	}

	authToken, err := ctrl.token(shared.Principal{ID: acc.id, Role: role, Email: acc.email})
	if err != nil {
		slog.Error("Auth Login JWT generation failed", "error", err, "subject_id", acc.id)
		return response.SendError(c, "Failed to generate JWT Token")
	}

	slog.Info("Auth Login successful", "email", body.Email, "role", role, "subject_id", acc.id)
	return response.SendSuccess(c, "Login Successfully", fiber.Map{
		"token": authToken,
		"role":  role,
		"name":  acc.name,
	})
}
