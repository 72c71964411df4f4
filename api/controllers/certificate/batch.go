package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/type/response"
)

func (ctrl *CertificateController) Batch(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	batchId := c.Params("batchId")
	report, err := ctrl.batchRepo.GetById(batchId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if report == nil {
		return apperror.NotFound("batch " + batchId)
	}
	if report.InstitutionID != p.ID {
		slog.Warn("Certificate Batch access denied", "batch_id", batchId, "institution_id", p.ID)
		return apperror.ErrForbidden
	}

	return response.SendSuccess(c, "Batch fetched", report)
}
