// Package verification checks uploaded documents against the fingerprint
// recorded when a certificate was issued.
package verification

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	certificatemodel "github.com/sunthewhat/academic-cert-api/api/model/certificateModel"
	verificationmodel "github.com/sunthewhat/academic-cert-api/api/model/verificationModel"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/internal/events"
	"github.com/sunthewhat/academic-cert-api/internal/fingerprint"
	"github.com/sunthewhat/academic-cert-api/internal/metrics"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/datatypes"
)

// AnonymousVerifier is logged when the caller gives no address.
const AnonymousVerifier = "anonymous"

type Request struct {
	CertificateID string
	Document      []byte
	VerifierEmail string
}

type Result struct {
	CertificateID string             `json:"certificate_id"`
	MatchStatus   string             `json:"match_status"`
	UploadedHash  string             `json:"uploaded_hash"`
	OriginalHash  string             `json:"original_hash"`
	Revoked       bool               `json:"revoked"`
	Certificate   *PublicCertificate `json:"certificate"`
	Tamper        *TamperReport      `json:"tamper,omitempty"`
	LogID         uint               `json:"log_id"`
}

func (r *Result) Valid() bool { return r.MatchStatus == model.MatchValid }

type Service struct {
	certs     certificatemodel.ICertificateRepository
	logs      verificationmodel.IVerificationRepository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(certs certificatemodel.ICertificateRepository, logs verificationmodel.IVerificationRepository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{certs: certs, logs: logs, publisher: publisher, now: time.Now}
}

// Verify compares the uploaded document with the stored fingerprint and
// appends a log entry for the attempt. The certificate itself is only read.
// A mismatch is a normal result, not an error.
func (s *Service) Verify(ctx context.Context, req Request) (*Result, error) {
	cert, err := s.Lookup(req.CertificateID)
	if err != nil {
		return nil, err
	}

	uploaded := fingerprint.Bytes(req.Document)
	result := &Result{
		CertificateID: cert.CertificateID,
		MatchStatus:   model.MatchInvalid,
		UploadedHash:  uploaded,
		OriginalHash:  cert.HashCode,
		Revoked:       cert.IsRevoked(),
		Certificate:   PublicView(cert),
	}
	if uploaded == cert.HashCode {
		result.MatchStatus = model.MatchValid
	}

	verifier := strings.TrimSpace(req.VerifierEmail)
	if verifier == "" {
		verifier = AnonymousVerifier
	}
	entry := &model.VerificationLog{
		VerifierEmail: verifier,
		CertificateID: cert.CertificateID,
		UploadedHash:  uploaded,
		OriginalHash:  cert.HashCode,
		MatchStatus:   result.MatchStatus,
	}

	if !result.Valid() {
		report := Analyze(req.Document)
		result.Tamper = report
		details, err := json.Marshal(report)
		if err != nil {
			return nil, err
		}
		entry.TamperScore = &report.Score
		entry.TamperDetails = datatypes.JSON(details)
	}

	if err := s.logs.Create(entry); err != nil {
		return nil, err
	}
	result.LogID = entry.ID

	metrics.Verifications.WithLabelValues(result.MatchStatus).Inc()
	slog.Info("Certificate verified", "cert_id", cert.CertificateID, "match_status", result.MatchStatus, "verifier", verifier)

	if err := s.publisher.Publish(ctx, events.RoutingVerified, events.CertificateVerified{
		CertificateID: cert.CertificateID,
		MatchStatus:   result.MatchStatus,
		Revoked:       result.Revoked,
		VerifiedAt:    s.now(),
	}); err != nil {
		slog.Warn("Failed to publish verification event", "cert_id", cert.CertificateID, "error", err)
	}

	return result, nil
}

// Lookup returns the certificate or an ErrNotFound error.
func (s *Service) Lookup(certificateID string) (*model.Certificate, error) {
	certificateID = strings.Trim(strings.TrimSpace(certificateID), "/")
	if certificateID == "" {
		return nil, apperror.NotFound("certificate")
	}
	cert, err := s.certs.GetByCertificateId(certificateID)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, apperror.NotFound("certificate " + certificateID)
	}
	return cert, nil
}

// History lists the verification attempts of a certificate, newest first.
func (s *Service) History(certificateID string) ([]*model.VerificationLog, error) {
	return s.logs.ListByCertificate(certificateID)
}
