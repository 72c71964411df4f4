package certificate_controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	certificate_controller "github.com/sunthewhat/academic-cert-api/api/controllers/certificate"
	"github.com/sunthewhat/academic-cert-api/api/handler"
	"github.com/sunthewhat/academic-cert-api/api/middleware"
	batchmodel "github.com/sunthewhat/academic-cert-api/api/model/batchModel"
	certificatemodel "github.com/sunthewhat/academic-cert-api/api/model/certificateModel"
	institutionmodel "github.com/sunthewhat/academic-cert-api/api/model/institutionModel"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/internal/events"
	"github.com/sunthewhat/academic-cert-api/internal/issuance"
	"github.com/sunthewhat/academic-cert-api/internal/storage"
	"github.com/sunthewhat/academic-cert-api/type/shared"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

const certID = "10TH/2024/007/0001"

type fakeIssuer struct {
	requests []issuance.Request
	summary  *issuance.Summary
	err      error
}

func (f *fakeIssuer) Run(_ context.Context, req issuance.Request) (*issuance.Summary, error) {
	f.requests = append(f.requests, req)
	return f.summary, f.err
}

type fakeQueue struct {
	reports []*batchmodel.BatchReport
	err     error
}

func (q *fakeQueue) Submit(report *batchmodel.BatchReport, req issuance.Request) error {
	report.Status = batchmodel.StatusQueued
	report.Rows = req.Sheet.Len()
	q.reports = append(q.reports, report)
	return q.err
}

type fixture struct {
	ctrl      *certificate_controller.CertificateController
	certs     *certificatemodel.MockCertificateRepository
	batches   *batchmodel.MockBatchRepository
	issuer    *fakeIssuer
	queue     *fakeQueue
	events    *events.Recorder
	uploadDir string
	pdf       []byte
}

var (
	institution = shared.Principal{ID: 7, Role: shared.RoleInstitution, Email: "office7@example.edu"}
	otherInst   = shared.Principal{ID: 8, Role: shared.RoleInstitution, Email: "office8@example.edu"}
	student     = shared.Principal{ID: 21, Role: shared.RoleStudent, Email: "asha@example.com"}
	stranger    = shared.Principal{ID: 22, Role: shared.RoleStudent, Email: "ravi@example.com"}
)

func setup(t *testing.T, threshold int) *fixture {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pdf := []byte("%PDF-1.3 certificate body")
	pdfHandle, err := store.Save(context.Background(), "10TH_2024_007_0001_10th.pdf", storage.ContentTypePDF, pdf)
	require.NoError(t, err)
	qrHandle, err := store.Save(context.Background(), "10TH_2024_007_0001_qr.png", storage.ContentTypePNG, []byte("png"))
	require.NoError(t, err)

	certs := certificatemodel.NewMockCertificateRepository()
	certs.GetByCertificateIdFunc = func(id string) (*model.Certificate, error) {
		if id != certID {
			return nil, nil
		}
		return &model.Certificate{
			CertificateID: certID,
			InstitutionID: institution.ID,
			StudentID:     student.ID,
			Variant:       "10th",
			PDFPath:       pdfHandle,
			QRPath:        qrHandle,
			Status:        model.CertificateActive,
		}, nil
	}
	certs.RevokeFunc = func(id string) (*model.Certificate, error) {
		return &model.Certificate{CertificateID: id, InstitutionID: institution.ID, Status: model.CertificateRevoked}, nil
	}

	institutions := institutionmodel.NewMockInstitutionRepository()
	institutions.GetByIdFunc = func(id uint) (*model.Institution, error) {
		return &model.Institution{ID: id, Name: "Govt Hr Sec School"}, nil
	}

	f := &fixture{
		certs:     certs,
		batches:   batchmodel.NewMockBatchRepository(),
		issuer:    &fakeIssuer{summary: &issuance.Summary{Variant: "10th", Rows: 2, Created: 2, Certificates: []string{"a", "b"}}},
		queue:     &fakeQueue{},
		events:    &events.Recorder{},
		uploadDir: t.TempDir(),
		pdf:       pdf,
	}
	f.ctrl = certificate_controller.NewCertificateController(certificate_controller.Deps{
		CertRepo:        certs,
		InstitutionRepo: institutions,
		BatchRepo:       f.batches,
		Issuer:          f.issuer,
		Queue:           f.queue,
		Store:           store,
		Publisher:       f.events,
		UploadDir:       f.uploadDir,
		AsyncThreshold:  threshold,
	})
	return f
}

func (f *fixture) app(p *shared.Principal) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handler.HandleError})
	app.Use(func(c *fiber.Ctx) error {
		if p != nil {
			middleware.SetPrincipal(c, *p)
		}
		return c.Next()
	})
	app.Get("/certificate", f.ctrl.List)
	app.Post("/certificate/upload", f.ctrl.Upload)
	app.Get("/certificate/batch/:batchId", f.ctrl.Batch)
	app.Get("/certificate/download/*", f.ctrl.Download)
	app.Get("/certificate/view/*", f.ctrl.View)
	app.Get("/certificate/qr/*", f.ctrl.QR)
	app.Put("/certificate/revoke/*", f.ctrl.Revoke)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func envelope(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func upload(t *testing.T, filename string, content string, certType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if certType != "" {
		require.NoError(t, w.WriteField("cert_type", certType))
	}
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/certificate/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

const twoRows = "Name,Email,Tamil\nAsha,asha@example.com,90\nRavi,,80\n"

func TestCertificateController_UploadInline(t *testing.T) {
	f := setup(t, 200)

	resp, body := do(t, f.app(&institution), upload(t, "students.csv", twoRows, "10th"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	e := envelope(t, body)
	assert.Equal(t, "Successfully created 2 certificates!", e["message"])
	data := e["data"].(map[string]any)
	assert.Equal(t, float64(2), data["created"])

	require.Len(t, f.issuer.requests, 1)
	req := f.issuer.requests[0]
	assert.Equal(t, "10th", req.Variant)
	assert.Equal(t, uint(7), req.Institution.ID)
	assert.Equal(t, 2, req.Sheet.Len())

	saved, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Contains(t, saved[0].Name(), "_students.csv")
}

func TestCertificateController_UploadRejects(t *testing.T) {
	tests := []struct {
		name        string
		req         func(t *testing.T) *http.Request
		wantMessage string
	}{
		{
			name:        "unsupported extension",
			req:         func(t *testing.T) *http.Request { return upload(t, "students.pdf", twoRows, "10th") },
			wantMessage: `unsupported file format: "students.pdf" (use .xlsx or .csv)`,
		},
		{
			name:        "missing certificate type",
			req:         func(t *testing.T) *http.Request { return upload(t, "students.csv", twoRows, "") },
			wantMessage: "CertType is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, 200)
			resp, body := do(t, f.app(&institution), tt.req(t))
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.wantMessage, envelope(t, body)["message"])
			assert.Empty(t, f.issuer.requests)
		})
	}
}

func TestCertificateController_UploadPersistenceFailure(t *testing.T) {
	f := setup(t, 200)
	f.issuer.summary = nil
	f.issuer.err = fmt.Errorf("%w: %v", apperror.ErrPersistence, errors.New("deadlock detected"))

	resp, body := do(t, f.app(&institution), upload(t, "students.csv", twoRows, "10th"))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, envelope(t, body)["message"], "failed to persist batch")
}

func TestCertificateController_UploadQueued(t *testing.T) {
	f := setup(t, 1)

	resp, body := do(t, f.app(&institution), upload(t, "students.csv", twoRows, "12th"))
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode, string(body))

	data := envelope(t, body)["data"].(map[string]any)
	assert.NotEmpty(t, data["batch_id"])
	assert.Equal(t, batchmodel.StatusQueued, data["status"])
	assert.Empty(t, f.issuer.requests)

	require.Len(t, f.queue.reports, 1)
	assert.Equal(t, uint(7), f.queue.reports[0].InstitutionID)
	assert.Equal(t, "students.csv", f.queue.reports[0].Filename)
}

func TestCertificateController_UploadQueueFull(t *testing.T) {
	f := setup(t, 1)
	f.queue.err = issuance.ErrQueueFull

	resp, _ := do(t, f.app(&institution), upload(t, "students.csv", twoRows, "12th"))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

type countingIssuer struct {
	runs atomic.Int32
}

func (r *countingIssuer) Run(_ context.Context, req issuance.Request) (*issuance.Summary, error) {
	r.runs.Add(1)
	return &issuance.Summary{Variant: req.Variant, Rows: req.Sheet.Len(), Created: req.Sheet.Len()}, nil
}

// Queued uploads run on real workers while the handler is still writing its
// response; run with -race.
func TestCertificateController_UploadQueuedOnPool(t *testing.T) {
	f := setup(t, 1)
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	runner := &countingIssuer{}
	pool := issuance.NewPool(runner, f.batches, 4, 32)
	pool.Start(context.Background())

	institutions := institutionmodel.NewMockInstitutionRepository()
	institutions.GetByIdFunc = func(id uint) (*model.Institution, error) {
		return &model.Institution{ID: id, Name: "Govt Hr Sec School"}, nil
	}
	f.ctrl = certificate_controller.NewCertificateController(certificate_controller.Deps{
		CertRepo:        f.certs,
		InstitutionRepo: institutions,
		BatchRepo:       f.batches,
		Issuer:          runner,
		Queue:           pool,
		Store:           store,
		UploadDir:       f.uploadDir,
		AsyncThreshold:  1,
	})
	app := f.app(&institution)

	const uploads = 20
	ids := make([]string, 0, uploads)
	for i := 0; i < uploads; i++ {
		resp, body := do(t, app, upload(t, "students.csv", twoRows, "10th"))
		require.Equal(t, fiber.StatusAccepted, resp.StatusCode, string(body))
		data := envelope(t, body)["data"].(map[string]any)
		assert.Equal(t, batchmodel.StatusQueued, data["status"])
		ids = append(ids, data["batch_id"].(string))
	}
	pool.Stop()

	assert.Equal(t, int32(uploads), runner.runs.Load())
	for _, id := range ids {
		report, err := f.batches.GetById(id)
		require.NoError(t, err)
		require.NotNil(t, report)
		assert.Equal(t, batchmodel.StatusCompleted, report.Status)
		assert.Equal(t, 2, report.Created)
	}
}

func TestCertificateController_Batch(t *testing.T) {
	f := setup(t, 1)
	require.NoError(t, f.batches.Create(&batchmodel.BatchReport{ID: "b1", InstitutionID: institution.ID, Status: batchmodel.StatusCompleted}))

	resp, body := do(t, f.app(&institution), httptest.NewRequest("GET", "/certificate/batch/b1", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, batchmodel.StatusCompleted, envelope(t, body)["data"].(map[string]any)["status"])

	resp, _ = do(t, f.app(&otherInst), httptest.NewRequest("GET", "/certificate/batch/b1", nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, f.app(&institution), httptest.NewRequest("GET", "/certificate/batch/nope", nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCertificateController_List(t *testing.T) {
	f := setup(t, 200)
	var listedBy string
	f.certs.ListByInstitutionFunc = func(id uint) ([]*model.Certificate, error) {
		listedBy = fmt.Sprintf("institution:%d", id)
		return []*model.Certificate{{CertificateID: certID}}, nil
	}
	f.certs.ListByStudentFunc = func(id uint) ([]*model.Certificate, error) {
		listedBy = fmt.Sprintf("student:%d", id)
		return nil, errors.New("database connection error")
	}

	resp, body := do(t, f.app(&institution), httptest.NewRequest("GET", "/certificate", nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "institution:7", listedBy)
	assert.Len(t, envelope(t, body)["data"], 1)

	resp, _ = do(t, f.app(&student), httptest.NewRequest("GET", "/certificate", nil))
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "student:21", listedBy)

	resp, _ = do(t, f.app(nil), httptest.NewRequest("GET", "/certificate", nil))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCertificateController_Download(t *testing.T) {
	tests := []struct {
		name           string
		principal      shared.Principal
		path           string
		wantStatusCode int
	}{
		{"issuing institution", institution, "/certificate/download/" + certID, fiber.StatusOK},
		{"receiving student", student, "/certificate/download/" + certID, fiber.StatusOK},
		{"percent-encoded id", institution, "/certificate/download/10TH%2F2024%2F007%2F0001", fiber.StatusOK},
		{"other institution", otherInst, "/certificate/download/" + certID, fiber.StatusForbidden},
		{"other student", stranger, "/certificate/download/" + certID, fiber.StatusForbidden},
		{"unknown certificate", institution, "/certificate/download/10TH/2024/007/0099", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, 200)
			p := tt.principal
			resp, body := do(t, f.app(&p), httptest.NewRequest("GET", tt.path, nil))
			require.Equal(t, tt.wantStatusCode, resp.StatusCode, string(body))
			if tt.wantStatusCode == fiber.StatusOK {
				assert.Equal(t, f.pdf, body)
				assert.Equal(t, `attachment; filename="10TH_2024_007_0001.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))
			}
		})
	}
}

func TestCertificateController_ViewAndQR(t *testing.T) {
	f := setup(t, 200)

	resp, body := do(t, f.app(&student), httptest.NewRequest("GET", "/certificate/view/"+certID, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, f.pdf, body)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inline")

	resp, body = do(t, f.app(&student), httptest.NewRequest("GET", "/certificate/qr/"+certID, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "png", string(body))
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
}

func TestCertificateController_MissingArtifact(t *testing.T) {
	f := setup(t, 200)
	f.certs.GetByCertificateIdFunc = func(id string) (*model.Certificate, error) {
		return &model.Certificate{
			CertificateID: id,
			InstitutionID: institution.ID,
			PDFPath:       filepath.Join(t.TempDir(), "gone.pdf"),
		}, nil
	}

	resp, _ := do(t, f.app(&institution), httptest.NewRequest("GET", "/certificate/download/"+certID, nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, f.app(&institution), httptest.NewRequest("GET", "/certificate/qr/"+certID, nil))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCertificateController_Revoke(t *testing.T) {
	f := setup(t, 200)

	resp, _ := do(t, f.app(&student), httptest.NewRequest("PUT", "/certificate/revoke/"+certID, nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Empty(t, f.events.Events)

	resp, body := do(t, f.app(&institution), httptest.NewRequest("PUT", "/certificate/revoke/"+certID, nil))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, model.CertificateRevoked, envelope(t, body)["data"].(map[string]any)["status"])

	require.Len(t, f.events.Events, 1)
	assert.Equal(t, events.RoutingRevoked, f.events.Events[0].RoutingKey)
}
