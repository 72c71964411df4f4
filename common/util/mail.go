package util

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"

	"github.com/sunthewhat/academic-cert-api/common"
	"github.com/sunthewhat/academic-cert-api/internal/renderer"
	"github.com/sunthewhat/academic-cert-api/internal/storage"
	"github.com/sunthewhat/academic-cert-api/type/shared/model"
	"gopkg.in/gomail.v2"
)

const defaultMailPort = 587

func InitDialer() {
	port := defaultMailPort
	if common.Config.MailPort != nil {
		port = *common.Config.MailPort
	}
	common.Dialer = gomail.NewDialer(*common.Config.MailHost, port, *common.Config.MailUser, *common.Config.MailPass)
}

// MailSender is the part of *gomail.Dialer the mailer needs.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// IssueMailer tells students that a certificate was issued to them and
// attaches the stored document.
type IssueMailer struct {
	sender  MailSender
	from    string
	baseURL string
	store   storage.Store
}

func NewIssueMailer(sender MailSender, from string, baseURL string, store storage.Store) *IssueMailer {
	return &IssueMailer{sender: sender, from: from, baseURL: baseURL, store: store}
}

func (m *IssueMailer) CertificateIssued(ctx context.Context, inst *model.Institution, student *model.Student, cert *model.Certificate) error {
	doc, err := m.load(ctx, cert.PDFPath)
	if err != nil {
		slog.Warn("Issue mail sent without attachment", "cert_id", cert.CertificateID, "error", err)
	}

	msg := m.compose(inst, student, cert, doc)
	if err := m.sender.DialAndSend(msg); err != nil {
		slog.Error("Error sending issue mail", "error", err, "recipient", student.Email, "cert_id", cert.CertificateID)
		return err
	}

	slog.Info("Issue mail sent", "recipient", student.Email, "cert_id", cert.CertificateID)
	return nil
}

func (m *IssueMailer) load(ctx context.Context, handle string) ([]byte, error) {
	if handle == "" {
		return nil, fmt.Errorf("certificate has no stored document")
	}
	r, err := m.store.Open(ctx, handle)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (m *IssueMailer) compose(inst *model.Institution, student *model.Student, cert *model.Certificate, doc []byte) *gomail.Message {
	verifyURL := renderer.VerificationURL(m.baseURL, cert.CertificateID)

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.from)
	mailer.SetHeader("To", student.Email)
	mailer.SetHeader("Subject", fmt.Sprintf("Your %s certificate from %s", cert.Variant, inst.Name))
	mailer.SetBody("text/html", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s has issued your %s certificate.</p>
		<p>Certificate No: <strong>%s</strong></p>
		<p>Anyone can check it at <a href="%s">%s</a>.</p>
		<p>Best regards,<br>%s</p>
	`,
		html.EscapeString(student.Name),
		html.EscapeString(inst.Name),
		html.EscapeString(cert.Variant),
		html.EscapeString(cert.CertificateID),
		verifyURL, html.EscapeString(verifyURL),
		html.EscapeString(inst.Name),
	))

	if len(doc) > 0 {
		mailer.Attach(renderer.SafeName(cert.CertificateID)+".pdf",
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(doc))
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {storage.ContentTypePDF}}),
		)
	}

	return mailer
}
