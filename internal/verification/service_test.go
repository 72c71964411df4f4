package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	certificatemodel "github.com/sunthewhat/academic-cert-api/api/model/certificateModel"
	verificationmodel "github.com/sunthewhat/academic-cert-api/api/model/verificationModel"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/sunthewhat/academic-cert-api/internal/events"
	"github.com/sunthewhat/academic-cert-api/internal/fingerprint"
	"github.com/sunthewhat/academic-cert-api/internal/renderer"
	"github.com/sunthewhat/academic-cert-api/test/helpers"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gorm.io/gorm"
)

const certID = "10TH/2024/001/0001"

type fixture struct {
	db      *gorm.DB
	svc     *Service
	events  *events.Recorder
	issued  []byte
	certRow *model.Certificate
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := helpers.SetupSQLite(t)
	inst := helpers.SeedInstitution(t, db, 1, "Govt Hr Sec School")
	student := helpers.SeedStudent(t, db, "STU0001", "asha@example.com")

	doc, err := renderer.New().Render(renderer.Input{
		Variant:       renderer.SecondaryLeaving,
		CertificateID: certID,
		Fields:        map[string]string{"name": "Asha"},
		IssuedAt:      time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	cert := &model.Certificate{
		CertificateID: certID,
		StudentID:     student.ID,
		InstitutionID: inst.ID,
		Variant:       string(renderer.SecondaryLeaving),
		HashCode:      fingerprint.Bytes(doc.Data),
		IssueDate:     time.Now(),
		Status:        model.CertificateActive,
	}
	require.NoError(t, db.Create(cert).Error)

	rec := &events.Recorder{}
	svc := NewService(
		certificatemodel.NewCertificateRepository(db),
		verificationmodel.NewVerificationRepository(db),
		rec,
	)
	return &fixture{db: db, svc: svc, events: rec, issued: doc.Data, certRow: cert}
}

func (f *fixture) logs(t *testing.T) []*model.VerificationLog {
	t.Helper()
	logs, err := f.svc.History(certID)
	require.NoError(t, err)
	return logs
}

func TestVerify_IdenticalDocumentIsValid(t *testing.T) {
	f := setup(t)

	result, err := f.svc.Verify(context.Background(), Request{
		CertificateID: certID,
		Document:      f.issued,
		VerifierEmail: "hr@company.com",
	})
	require.NoError(t, err)

	assert.True(t, result.Valid())
	assert.Equal(t, f.certRow.HashCode, result.UploadedHash)
	assert.Equal(t, f.certRow.HashCode, result.OriginalHash)
	assert.Nil(t, result.Tamper)
	assert.False(t, result.Revoked)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, certID, result.Certificate.CertificateID)
	assert.Equal(t, "Seed STU0001", result.Certificate.StudentName)
	assert.Equal(t, "Govt Hr Sec School", result.Certificate.InstitutionName)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, model.MatchValid, logs[0].MatchStatus)
	assert.Equal(t, "hr@company.com", logs[0].VerifierEmail)
	assert.Nil(t, logs[0].TamperScore)
	assert.Equal(t, result.LogID, logs[0].ID)

	require.Len(t, f.events.Events, 1)
	assert.Equal(t, events.RoutingVerified, f.events.Events[0].RoutingKey)
}

func TestVerify_SingleByteChangeIsInvalid(t *testing.T) {
	f := setup(t)

	altered := append([]byte(nil), f.issued...)
	altered[len(altered)-1] ^= 0x01

	result, err := f.svc.Verify(context.Background(), Request{CertificateID: certID, Document: altered})
	require.NoError(t, err)

	assert.False(t, result.Valid())
	assert.Equal(t, model.MatchInvalid, result.MatchStatus)
	assert.NotEqual(t, result.OriginalHash, result.UploadedHash)
	require.NotNil(t, result.Tamper)
	assert.GreaterOrEqual(t, result.Tamper.Score, 0.5)
	assert.LessOrEqual(t, result.Tamper.Score, 1.0)

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, model.MatchInvalid, logs[0].MatchStatus)
	assert.Equal(t, AnonymousVerifier, logs[0].VerifierEmail)
	require.NotNil(t, logs[0].TamperScore)
	assert.InDelta(t, result.Tamper.Score, *logs[0].TamperScore, 1e-9)
	assert.Contains(t, string(logs[0].TamperDetails), "findings")
}

func TestVerify_EveryAttemptIsLogged(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, doc := range [][]byte{f.issued, []byte("not a pdf"), f.issued} {
		_, err := f.svc.Verify(ctx, Request{CertificateID: certID, Document: doc})
		require.NoError(t, err)
	}

	logs := f.logs(t)
	require.Len(t, logs, 3)
	statuses := []string{logs[0].MatchStatus, logs[1].MatchStatus, logs[2].MatchStatus}
	assert.ElementsMatch(t, []string{model.MatchValid, model.MatchValid, model.MatchInvalid}, statuses)
}

func TestVerify_DoesNotModifyCertificate(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Verify(context.Background(), Request{CertificateID: certID, Document: []byte("forged")})
	require.NoError(t, err)

	var after model.Certificate
	require.NoError(t, f.db.Where("certificate_id = ?", certID).First(&after).Error)
	assert.Equal(t, f.certRow.HashCode, after.HashCode)
	assert.Equal(t, model.CertificateActive, after.Status)
}

func TestVerify_RevokedCertificateStillMatches(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Model(&model.Certificate{}).Where("certificate_id = ?", certID).
		Update("status", model.CertificateRevoked).Error)

	result, err := f.svc.Verify(context.Background(), Request{CertificateID: certID, Document: f.issued})
	require.NoError(t, err)

	assert.True(t, result.Valid())
	assert.True(t, result.Revoked)
}

func TestVerify_UnknownCertificate(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Verify(context.Background(), Request{CertificateID: "12TH/2024/001/9999", Document: f.issued})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, f.logs(t))
	assert.Empty(t, f.events.Events)
}

func TestLookup(t *testing.T) {
	f := setup(t)

	cert, err := f.svc.Lookup("/" + certID + "/")
	require.NoError(t, err)
	assert.Equal(t, certID, cert.CertificateID)

	_, err = f.svc.Lookup("  ")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestVerify_LogFailureIsReturned(t *testing.T) {
	certs := certificatemodel.NewMockCertificateRepository()
	certs.GetByCertificateIdFunc = func(string) (*model.Certificate, error) {
		return &model.Certificate{CertificateID: certID, HashCode: fingerprint.Bytes([]byte("doc"))}, nil
	}
	logs := verificationmodel.NewMockVerificationRepository()
	logs.CreateFunc = func(*model.VerificationLog) error { return errors.New("disk full") }

	svc := NewService(certs, logs, nil)
	_, err := svc.Verify(context.Background(), Request{CertificateID: certID, Document: []byte("doc")})
	assert.EqualError(t, err, "disk full")
}
