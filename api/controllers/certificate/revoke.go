package certificate_controller

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/internal/events"
	"github.com/sunthewhat/academic-cert-api/type/response"
)

// Revoke marks a certificate revoked. Only the issuing institution may do it;
// the document and its fingerprint are kept so verification still works.
func (ctrl *CertificateController) Revoke(c *fiber.Ctx) error {
	cert, p, err := ctrl.owned(c)
	if err != nil {
		return err
	}
	if !p.IsInstitution() {
		return apperror.ErrForbidden
	}

	revoked, err := ctrl.certRepo.Revoke(cert.CertificateID)
	if err != nil {
		slog.Error("Certificate Revoke failed", "error", err, "cert_id", cert.CertificateID)
		return response.SendInternalError(c, err)
	}
	if revoked == nil {
		return apperror.NotFound("certificate " + cert.CertificateID)
	}

	if err := ctrl.publisher.Publish(c.UserContext(), events.RoutingRevoked, events.CertificateRevoked{
		CertificateID: revoked.CertificateID,
		InstitutionID: revoked.InstitutionID,
		RevokedAt:     time.Now(),
	}); err != nil {
		slog.Warn("Failed to publish revocation event", "cert_id", revoked.CertificateID, "error", err)
	}

	slog.Info("Certificate revoked", "cert_id", revoked.CertificateID, "institution_id", p.ID)
	return response.SendSuccess(c, "Certificate revoked", revoked)
}
