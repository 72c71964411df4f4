package verification_controller

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/academic-cert-api/api/controllers/certificate"
	"github.com/sunthewhat/academic-cert-api/api/middleware"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/internal/verification"
	"github.com/sunthewhat/academic-cert-api/type/payload"
	"github.com/sunthewhat/academic-cert-api/type/response"
)

// maxDocumentSize bounds an uploaded document; certificates are a few hundred KB.
const maxDocumentSize = 20 << 20

type VerificationController struct {
	service *verification.Service
}

func NewVerificationController(service *verification.Service) *VerificationController {
	return &VerificationController{service: service}
}

// Verify checks an uploaded document against the certificate it claims to be.
func (ctrl *VerificationController) Verify(c *fiber.Ctx) error {
	form := new(payload.VerifyPayload)
	if err := c.BodyParser(form); err != nil {
		return response.SendFailed(c, "Failed to parse form")
	}
	if err := util.ValidateStruct(form); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.SendFailed(c, "No file uploaded")
	}
	if file.Size > maxDocumentSize {
		return response.SendFailed(c, "File is too large")
	}

	src, err := file.Open()
	if err != nil {
		return response.SendInternalError(c, err)
	}
	defer src.Close()

	document, err := io.ReadAll(src)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	result, err := ctrl.service.Verify(c.UserContext(), verification.Request{
		CertificateID: form.CertificateID,
		Document:      document,
		VerifierEmail: form.VerifierEmail,
	})
	if err != nil {
		return err
	}

	msg := "Certificate is authentic"
	if !result.Valid() {
		msg = "Certificate does not match the issued document"
	} else if result.Revoked {
		msg = "Certificate is authentic but has been revoked"
	}
	return response.SendSuccess(c, msg, result)
}

// Public serves the verification URL embedded in every QR code.
func (ctrl *VerificationController) Public(c *fiber.Ctx) error {
	cert, err := ctrl.service.Lookup(certificate_controller.CertificateIDParam(c))
	if err != nil {
		return err
	}
	return response.SendSuccess(c, "Certificate found", verification.PublicView(cert))
}

// History lists verification attempts for a certificate the caller owns.
func (ctrl *VerificationController) History(c *fiber.Ctx) error {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.SendUnauthorized(c, "User token not found")
	}

	cert, err := ctrl.service.Lookup(certificate_controller.CertificateIDParam(c))
	if err != nil {
		return err
	}
	if !p.Owns(cert) {
		slog.Warn("Verification History access denied", "cert_id", cert.CertificateID, "subject_id", p.ID)
		return apperror.ErrForbidden
	}

	logs, err := ctrl.service.History(cert.CertificateID)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	return response.SendSuccess(c, "Verification history fetched", logs)
}
