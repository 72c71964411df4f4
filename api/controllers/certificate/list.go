package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/type/response"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

// List returns the certificates the caller issued or received, newest first.
func (ctrl *CertificateController) List(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var certificates []*model.Certificate
	if p.IsInstitution() {
		certificates, err = ctrl.certRepo.ListByInstitution(p.ID)
	} else {
		certificates, err = ctrl.certRepo.ListByStudent(p.ID)
	}
	if err != nil {
		slog.Error("Certificate List failed", "error", err, "role", p.Role, "subject_id", p.ID)
		return response.SendInternalError(c, err)
	}

	slog.Info("Certificate List successful", "count", len(certificates), "role", p.Role)
	return response.SendSuccess(c, "Certificate fetched", certificates)
}

func (ctrl *CertificateController) GetById(c *fiber.Ctx) error {
	cert, _, err := ctrl.owned(c)
	if err != nil {
		return err
	}
	return response.SendSuccess(c, "Certificate found", cert)
}
