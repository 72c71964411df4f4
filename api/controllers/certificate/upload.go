package certificate_controller

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	batchmodel "github.com/sunthewhat/academic-cert-api/api/model/batchModel"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/internal/issuance"
	"github.com/sunthewhat/academic-cert-api/internal/sheet"
	"github.com/sunthewhat/academic-cert-api/type/payload"
	"github.com/sunthewhat/academic-cert-api/type/response"
)

// Upload issues certificates from a CSV or XLSX table. Small tables are
// processed inline; larger ones are queued and polled through Batch.
func (ctrl *CertificateController) Upload(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	form := new(payload.UploadCertificatePayload)
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
	if _, err := sheet.FormatOf(file.Filename); err != nil {
		slog.Warn("Certificate Upload rejected", "error", err, "institution_id", p.ID)
		return response.SendFailed(c, err.Error())
	}

	inst, err := ctrl.institutionRepo.GetById(p.ID)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if inst == nil {
		return response.SendNotFound(c, "Institution not found")
	}

	saved := filepath.Join(ctrl.uploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename)))
	if err := c.SaveFile(file, saved); err != nil {
		slog.Error("Certificate Upload failed to save file", "error", err, "path", saved)
		return response.SendError(c, "Failed to save upload")
	}

	table, err := parseSaved(file.Filename, saved)
	if err != nil {
		slog.Warn("Certificate Upload unreadable table", "error", err, "file", file.Filename)
		return response.SendFailed(c, fmt.Sprintf("Failed to read file: %v", err))
	}

	req := issuance.Request{Institution: inst, Variant: form.CertType, Sheet: table}

	if ctrl.queue != nil && table.Len() > ctrl.asyncThreshold {
		report := &batchmodel.BatchReport{
			ID:            uuid.NewString(),
			InstitutionID: inst.ID,
			Filename:      file.Filename,
		}
		if err := ctrl.queue.Submit(report, req); err != nil {
			if errors.Is(err, issuance.ErrQueueFull) {
				return response.SendUnavailable(c, "Issuance queue is full, try again later")
			}
			return response.SendInternalError(c, err)
		}
		slog.Info("Certificate Upload queued", "batch_id", report.ID, "rows", table.Len(), "institution_id", inst.ID)
		return response.SendAccepted(c, "Upload queued", payload.BatchAccepted{
			BatchID: report.ID,
			Rows:    table.Len(),
			Status:  report.Status,
		})
	}

	summary, err := ctrl.issuer.Run(c.UserContext(), req)
	if err != nil {
		slog.Error("Certificate Upload batch failed", "error", err, "institution_id", inst.ID)
		return err
	}

	slog.Info("Certificate Upload completed",
		"institution_id", inst.ID,
		"certificate_type", summary.Variant,
		"created", summary.Created,
		"updated", summary.Updated,
		"errors", len(summary.Errors))
	return response.SendSuccess(c, summary.Message(), summary)
}

func parseSaved(filename string, path string) (*sheet.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sheet.Parse(filename, f)
}
