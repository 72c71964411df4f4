package auth_controller

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/type/payload"
	"github.com/sunthewhat/academic-cert-api/type/response"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

func (ctrl *AuthController) RegisterInstitution(c *fiber.Ctx) error {
	body := new(payload.RegisterInstitutionPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	dup, err := ctrl.institutionRepo.GetByEmail(body.Email)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if dup != nil {
		return response.SendFailed(c, "Email already registered")
	}

	hashed, err := util.HashPassword(body.Password)
	if err != nil {
		slog.Error("Auth RegisterInstitution password hashing failed", "error", err)
		return response.SendError(c, "Password hashing failed")
	}

	inst := &model.Institution{
		Name:         strings.TrimSpace(body.Name),
		Type:         body.Type,
		Email:        body.Email,
		PasswordHash: hashed,
		Address:      body.Address,
		Phone:        body.Phone,
	}
	if err := ctrl.institutionRepo.Create(inst); err != nil {
		return response.SendError(c, "Failed to create institution")
	}

	slog.Info("Auth RegisterInstitution successful", "institution_id", inst.ID, "email", inst.Email)
	return response.SendSuccess(c, "Institution Registered", fiber.Map{
		"id":    inst.ID,
		"name":  inst.Name,
		"email": inst.Email,
	})
}

func (ctrl *AuthController) RegisterStudent(c *fiber.Ctx) error {
	body := new(payload.RegisterStudentPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	if dup, err := ctrl.studentRepo.GetByEmail(body.Email); dup != nil || err != nil {
		if dup != nil {
			return response.SendFailed(c, "Email already registered")
		}
		return response.SendInternalError(c, err)
	}
	if dup, err := ctrl.studentRepo.GetByStudentId(body.StudentID); dup != nil || err != nil {
		if dup != nil {
			return response.SendFailed(c, "Student ID already registered")
		}
		return response.SendInternalError(c, err)
	}

	hashed, err := util.HashPassword(body.Password)
	if err != nil {
		slog.Error("Auth RegisterStudent password hashing failed", "error", err)
		return response.SendError(c, "Password hashing failed")
	}

	student := &model.Student{
		StudentID:    body.StudentID,
		Name:         strings.TrimSpace(body.Name),
		Email:        body.Email,
		PasswordHash: hashed,
		Phone:        body.Phone,
		Dob:          body.Dob,
	}
	if err := ctrl.studentRepo.Create(student); err != nil {
		return response.SendError(c, "Failed to create student")
	}

	slog.Info("Auth RegisterStudent successful", "student_id", student.StudentID)
	return response.SendSuccess(c, "Student Registered", fiber.Map{
		"id":         student.ID,
		"student_id": student.StudentID,
		"email":      student.Email,
	})
}
