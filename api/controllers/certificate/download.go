package certificate_controller

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/internal/renderer"
)

func (ctrl *CertificateController) artifact(c *fiber.Ctx, handle string) ([]byte, error) {
	if handle == "" {
		return nil, apperror.NotFound("stored file")
	}
	r, err := ctrl.store.Open(c.UserContext(), handle)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Download sends the certificate PDF as an attachment.
func (ctrl *CertificateController) Download(c *fiber.Ctx) error {
	cert, p, err := ctrl.owned(c)
	if err != nil {
		return err
	}

	data, err := ctrl.artifact(c, cert.PDFPath)
	if err != nil {
		slog.Warn("Certificate Download artifact unavailable", "error", err, "cert_id", cert.CertificateID)
		return err
	}

	slog.Info("Certificate Download", "cert_id", cert.CertificateID, "role", p.Role, "subject_id", p.ID)
	c.Attachment(renderer.SafeName(cert.CertificateID) + ".pdf")
	return c.Send(data)
}

// View sends the certificate PDF for display in the browser.
func (ctrl *CertificateController) View(c *fiber.Ctx) error {
	cert, _, err := ctrl.owned(c)
	if err != nil {
		return err
	}

	data, err := ctrl.artifact(c, cert.PDFPath)
	if err != nil {
		return err
	}

	c.Type("pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, renderer.SafeName(cert.CertificateID)))
	return c.Send(data)
}

func (ctrl *CertificateController) QR(c *fiber.Ctx) error {
	cert, _, err := ctrl.owned(c)
	if err != nil {
		return err
	}

	data, err := ctrl.artifact(c, cert.QRPath)
	if err != nil {
		return err
	}

	c.Type("png")
	return c.Send(data)
}
