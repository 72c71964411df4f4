// Package issuance turns an uploaded student table into persisted, rendered
// and fingerprinted certificates.
package issuance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	certificatemodel "github.com/sunthewhat/academic-cert-api/api/model/certificateModel"
	studentmodel "github.com/sunthewhat/academic-cert-api/api/model/studentModel"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/internal/events"
	"github.com/sunthewhat/academic-cert-api/internal/fingerprint"
	"github.com/sunthewhat/academic-cert-api/internal/metrics"
	"github.com/sunthewhat/academic-cert-api/internal/renderer"
	"github.com/sunthewhat/academic-cert-api/internal/sheet"
	"github.com/sunthewhat/academic-cert-api/internal/storage"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Row failure reasons shown to the uploader.
const (
	ReasonInvalidType = "Invalid certificate type"
	ReasonHash        = "Failed to generate hash"
)

// Request is one upload: who issues, which variant was selected and the
// parsed table.
type Request struct {
	Institution *model.Institution
	Variant     string
	Sheet       *sheet.Sheet
}

// Notifier is told about every persisted certificate after the batch commits.
type Notifier interface {
	CertificateIssued(ctx context.Context, inst *model.Institution, student *model.Student, cert *model.Certificate) error
}

type Orchestrator struct {
	db       *gorm.DB
	store    storage.Store
	renderer *renderer.Renderer
	qr       *renderer.QREncoder
	baseURL  string
	now      func() time.Time
	locks    *keyedMutex

	publisher events.Publisher
	notifier  Notifier
}

type Option func(*Orchestrator)

// WithClock overrides time.Now, which dates certificates and their ids.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(o *Orchestrator) { o.publisher = p }
}

func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

func NewOrchestrator(db *gorm.DB, store storage.Store, baseURL string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		db:        db,
		store:     store,
		renderer:  renderer.New(),
		qr:        renderer.NewQREncoder(),
		baseURL:   baseURL,
		now:       time.Now,
		locks:     newKeyedMutex(),
		publisher: events.Nop{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run processes every row of the request. Row failures are collected in the
// summary and never abort the batch; successful rows are committed together
// in one transaction. A failed commit returns an ErrPersistence error and no
// summary.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Summary, error) {
	tag := strings.TrimSpace(req.Variant)
	variant, err := renderer.ParseVariant(tag)
	if err != nil {
		// Rows still fail one by one with ReasonInvalidType.
		variant = renderer.Variant(tag)
	}
	inst := req.Institution

	// Sequence numbers come from a count; batches for the same issuer and
	// variant must not interleave.
	unlock := o.locks.Lock(fmt.Sprintf("%d/%s", inst.ID, variant))
	defer unlock()

	start := o.now()
	issuedAt := start
	summary := &Summary{Variant: string(variant), Rows: req.Sheet.Len()}

	var credOnce sync.Once
	var credHash string
	var credErr error
	credential := func() (string, error) {
		credOnce.Do(func() { credHash, credErr = util.HashPassword(PlaceholderPassword) })
		return credHash, credErr
	}

	txErr := o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		certs := certificatemodel.NewCertificateRepository(tx)
		res := &resolver{students: studentmodel.NewStudentRepository(tx), credential: credential}

		existing, err := certs.CountByIssuer(inst.ID, string(variant))
		if err != nil {
			return err
		}

		for row := range req.Sheet.Rows() {
			if err := ctx.Err(); err != nil {
				return err
			}

			savepoint := fmt.Sprintf("row_%d", row.Index)
			if err := tx.SavePoint(savepoint).Error; err != nil {
				return err
			}

			issued, rowErr := o.issueRow(ctx, certs, res, inst, variant, row, existing, issuedAt)
			if rowErr != nil {
				if err := tx.RollbackTo(savepoint).Error; err != nil {
					return err
				}
				slog.Warn("Issuance row failed", "institution_id", inst.ID, "row", row.Index, "error", rowErr.Err)
				summary.Errors = append(summary.Errors, rowErr.Error())
				continue
			}
			summary.add(*issued)
		}
		return nil
	})
	if txErr != nil {
		for _, issued := range summary.Issued {
			o.discard(ctx, issued.artifacts)
		}
		slog.Error("Issuance batch rolled back", "institution_id", inst.ID, "certificate_type", variant, "error", txErr)
		return nil, fmt.Errorf("%w: %v", apperror.ErrPersistence, txErr)
	}

	metrics.BatchDuration.WithLabelValues(string(variant)).Observe(o.now().Sub(start).Seconds())
	metrics.RowErrors.WithLabelValues(string(variant)).Add(float64(len(summary.Errors)))
	slog.Info("Issuance batch committed",
		"institution_id", inst.ID,
		"certificate_type", variant,
		"rows", summary.Rows,
		"created", summary.Created,
		"updated", summary.Updated,
		"errors", len(summary.Errors),
	)

	o.promote(ctx, summary)
	o.afterCommit(ctx, inst, summary)
	return summary, nil
}

func (o *Orchestrator) issueRow(
	ctx context.Context,
	certs certificatemodel.ICertificateRepository,
	res *resolver,
	inst *model.Institution,
	variant renderer.Variant,
	row sheet.Row,
	existing int64,
	issuedAt time.Time,
) (*Issued, *apperror.RowError) {
	// Artifacts are written under pending names and only replace the current
	// ones once the batch commits.
	var artifacts []staged
	fail := func(reason string, err error) (*Issued, *apperror.RowError) {
		o.discard(ctx, artifacts)
		if err == nil {
			err = errors.New(reason)
		}
		return nil, &apperror.RowError{Row: row.Index, Reason: reason, Err: err}
	}

	fields := withInstitutionDefaults(row.Fields, inst, variant)
	position := int64(row.Index - 1)

	student, err := res.resolve(fields, existing+position)
	if err != nil {
		return fail("Failed to resolve student: "+err.Error(), err)
	}

	certID := CertificateID(string(variant), issuedAt.Year(), inst.ID, existing+position+1)

	qr, err := o.qr.Encode(renderer.VerificationURL(o.baseURL, certID))
	if err != nil {
		slog.Warn("QR encoding failed, certificate rendered without it", "cert_id", certID, "error", err)
		qr = nil
	}

	doc, err := o.renderer.Render(renderer.Input{
		Variant:       variant,
		CertificateID: certID,
		Fields:        fields,
		QR:            qr,
		IssuedAt:      issuedAt,
	})
	if errors.Is(err, renderer.ErrUnsupportedVariant) {
		return fail(ReasonInvalidType, err)
	}
	if err != nil {
		return fail("Failed to render certificate", err)
	}

	pdf, err := o.stage(ctx, doc.Filename, storage.ContentTypePDF, doc.Data)
	if err != nil {
		return fail("Failed to store certificate", err)
	}
	artifacts = append(artifacts, pdf)
	hash, err := o.fingerprintStored(ctx, pdf.handle)
	if err != nil {
		return fail(ReasonHash, err)
	}

	var qrHandle string
	if qr != nil {
		code, err := o.stage(ctx, renderer.QRFilename(certID), storage.ContentTypePNG, qr)
		if err != nil {
			return fail("Failed to store QR code", err)
		}
		artifacts = append(artifacts, code)
		qrHandle = o.store.Handle(code.name)
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return fail("Failed to encode certificate data", err)
	}

	cert := &model.Certificate{
		CertificateID: certID,
		StudentID:     student.ID,
		InstitutionID: inst.ID,
		Variant:       string(variant),
		Payload:       datatypes.JSON(payload),
		PDFPath:       o.store.Handle(pdf.name),
		HashCode:      hash,
		QRPath:        qrHandle,
		IssueDate:     issuedAt,
		Status:        model.CertificateActive,
	}
	created, err := certs.Upsert(cert)
	if err != nil {
		return fail("Failed to save certificate", err)
	}

	return &Issued{Row: row.Index, Certificate: cert, Student: student, Created: created, artifacts: artifacts}, nil
}

// pendingSuffix marks an artifact written by a batch that has not committed.
const pendingSuffix = ".pending"

type staged struct {
	name   string
	handle string
}

func (o *Orchestrator) stage(ctx context.Context, name string, contentType string, data []byte) (staged, error) {
	handle, err := o.store.Save(ctx, name+pendingSuffix, contentType, data)
	if err != nil {
		return staged{}, err
	}
	return staged{name: name, handle: handle}, nil
}

// discard removes pending artifacts of a failed row or a rolled back batch.
func (o *Orchestrator) discard(ctx context.Context, artifacts []staged) {
	ctx = context.WithoutCancel(ctx)
	for _, a := range artifacts {
		if err := o.store.Delete(ctx, a.handle); err != nil {
			slog.Warn("Failed to remove pending artifact", "handle", a.handle, "error", err)
		}
	}
}

// promote moves the committed rows' artifacts into place. A failure leaves the
// previous artifact in place, which no longer matches the committed hash.
func (o *Orchestrator) promote(ctx context.Context, summary *Summary) {
	ctx = context.WithoutCancel(ctx)
	for _, issued := range summary.Issued {
		for _, a := range issued.artifacts {
			if _, err := o.store.Promote(ctx, a.handle, a.name); err != nil {
				slog.Error("Failed to promote artifact", "cert_id", issued.Certificate.CertificateID, "name", a.name, "error", err)
			}
		}
	}
}

// fingerprintStored hashes the artifact as it was stored, so the recorded
// hash always describes the bytes a verifier will download.
func (o *Orchestrator) fingerprintStored(ctx context.Context, handle string) (string, error) {
	rc, err := o.store.Open(ctx, handle)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return fingerprint.Document(rc)
}

// withInstitutionDefaults copies fields and fills the issuer-derived columns a
// sheet usually leaves out.
func withInstitutionDefaults(fields map[string]string, inst *model.Institution, variant renderer.Variant) map[string]string {
	out := make(map[string]string, len(fields)+3)
	for k, v := range fields {
		out[k] = v
	}
	defaults := []string{"board", "school_name"}
	if variant == renderer.Degree {
		defaults = append(defaults, "college_name")
	}
	for _, key := range defaults {
		if out[key] == "" {
			out[key] = inst.Name
		}
	}
	return out
}

// afterCommit runs the best effort side channels. Failures are logged only.
func (o *Orchestrator) afterCommit(ctx context.Context, inst *model.Institution, summary *Summary) {
	for _, issued := range summary.Issued {
		cert := issued.Certificate
		outcome := "updated"
		if issued.Created {
			outcome = "created"
		}
		metrics.CertificatesIssued.WithLabelValues(cert.Variant, outcome).Inc()

		err := o.publisher.Publish(ctx, events.RoutingIssued, events.CertificateIssued{
			CertificateID: cert.CertificateID,
			InstitutionID: cert.InstitutionID,
			StudentID:     cert.StudentID,
			Variant:       cert.Variant,
			HashCode:      cert.HashCode,
			Created:       issued.Created,
			IssuedAt:      cert.IssueDate,
		})
		if err != nil {
			slog.Warn("Failed to publish issue event", "cert_id", cert.CertificateID, "error", err)
		}

		if o.notifier == nil || SyntheticEmail(issued.Student.Email) {
			continue
		}
		if err := o.notifier.CertificateIssued(ctx, inst, issued.Student, cert); err != nil {
			slog.Warn("Failed to notify student", "cert_id", cert.CertificateID, "email", issued.Student.Email, "error", err)
		}
	}
}
