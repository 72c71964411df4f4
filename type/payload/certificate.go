package payload

// UploadCertificatePayload is the form part of a spreadsheet upload; the
// table itself arrives as the multipart "file".
type UploadCertificatePayload struct {
	CertType string `form:"cert_type" validate:"required"`
}

type VerifyPayload struct {
	CertificateID string `form:"certificate_id" validate:"required,max=100"`
	VerifierEmail string `form:"verifier_email" validate:"omitempty,email"`
}

type BatchAccepted struct {
	BatchID string `json:"batch_id"`
	Rows    int    `json:"rows"`
	Status  string `json:"status"`
}
