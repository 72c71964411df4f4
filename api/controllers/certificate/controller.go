package certificate_controller

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
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

// BatchQueue accepts uploads too large to process inline; *issuance.Pool
// satisfies it.
type BatchQueue interface {
	Submit(report *batchmodel.BatchReport, req issuance.Request) error
}

// Deps are the collaborators of CertificateController. Queue may be nil, in
// which case every upload runs inline.
type Deps struct {
	CertRepo        certificatemodel.ICertificateRepository
	InstitutionRepo institutionmodel.IInstitutionRepository
	BatchRepo       batchmodel.IBatchRepository
	Issuer          issuance.Runner
	Queue           BatchQueue
	Store           storage.Store
	Publisher       events.Publisher
	UploadDir       string
	AsyncThreshold  int
}

// CertificateController handles certificate-related HTTP requests
type CertificateController struct {
	certRepo        certificatemodel.ICertificateRepository
	institutionRepo institutionmodel.IInstitutionRepository
	batchRepo       batchmodel.IBatchRepository
	issuer          issuance.Runner
	queue           BatchQueue
	store           storage.Store
	publisher       events.Publisher
	uploadDir       string
	asyncThreshold  int
}

// NewCertificateController creates a new certificate controller with injected dependencies
func NewCertificateController(deps Deps) *CertificateController {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &CertificateController{
		certRepo:        deps.CertRepo,
		institutionRepo: deps.InstitutionRepo,
		batchRepo:       deps.BatchRepo,
		issuer:          deps.Issuer,
		queue:           deps.Queue,
		store:           deps.Store,
		publisher:       publisher,
		uploadDir:       deps.UploadDir,
		asyncThreshold:  deps.AsyncThreshold,
	}
}

// CertificateIDParam reads a certificate id from the wildcard route segment.
// Ids contain slashes, so they arrive either raw or percent-encoded.
func CertificateIDParam(c *fiber.Ctx) string {
	raw := c.Params("*")
	if id, err := url.PathUnescape(raw); err == nil {
		raw = id
	}
	return strings.Trim(strings.TrimSpace(raw), "/")
}

func principal(c *fiber.Ctx) (shared.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return shared.Principal{}, fiber.NewError(fiber.StatusUnauthorized, "User token not found")
	}
	return p, nil
}

// owned loads the certificate named by the route and checks that the caller
// may read it.
func (ctrl *CertificateController) owned(c *fiber.Ctx) (*model.Certificate, shared.Principal, error) {
	p, err := principal(c)
	if err != nil {
		return nil, p, err
	}

	certId := CertificateIDParam(c)
	if certId == "" {
		return nil, p, fiber.NewError(fiber.StatusBadRequest, "Certificate ID is required")
	}

	cert, err := ctrl.certRepo.GetByCertificateId(certId)
	if err != nil {
		return nil, p, err
	}
	if cert == nil {
		return nil, p, apperror.NotFound("certificate " + certId)
	}
	if !p.Owns(cert) {
		return nil, p, apperror.ErrForbidden
	}
	return cert, p, nil
}
