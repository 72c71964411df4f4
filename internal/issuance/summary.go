package issuance

import (
	"fmt"
	"strings"

	"github.com/sunthewhat/academic-cert-api/type/shared/model"
)

// ErrorPreview is how many row errors a user-facing message lists.
const ErrorPreview = 5

type Outcome string

const (
	// OutcomeIssued means at least one certificate was created or updated.
	OutcomeIssued Outcome = "issued"
	// OutcomeFailed means rows were present but every one of them failed.
	OutcomeFailed Outcome = "failed"
	// OutcomeEmpty means nothing was processed at all.
	OutcomeEmpty Outcome = "empty"
)

// Issued is one persisted row.
type Issued struct {
	Row         int
	Certificate *model.Certificate
	Student     *model.Student
	Created     bool

	artifacts []staged
}

// Summary aggregates a batch. Errors holds every row error in row order; only
// Message truncates them.
type Summary struct {
	Variant      string   `json:"certificate_type"`
	Rows         int      `json:"rows"`
	Created      int      `json:"created"`
	Updated      int      `json:"updated"`
	Errors       []string `json:"errors"`
	Certificates []string `json:"certificates"`
	Issued       []Issued `json:"-"`
}

func (s *Summary) add(i Issued) {
	if i.Created {
		s.Created++
	} else {
		s.Updated++
	}
	s.Certificates = append(s.Certificates, i.Certificate.CertificateID)
	s.Issued = append(s.Issued, i)
}

// Persisted counts created and updated certificates.
func (s *Summary) Persisted() int { return s.Created + s.Updated }

func (s *Summary) Outcome() Outcome {
	switch {
	case s.Persisted() > 0:
		return OutcomeIssued
	case len(s.Errors) > 0:
		return OutcomeFailed
	}
	return OutcomeEmpty
}

// Message is the notification shown to the uploader.
func (s *Summary) Message() string {
	var parts []string
	if s.Persisted() > 0 {
		parts = append(parts, fmt.Sprintf("Successfully created %d certificates!", s.Persisted()))
	}
	if len(s.Errors) > 0 {
		preview := s.Errors
		if len(preview) > ErrorPreview {
			preview = preview[:ErrorPreview]
		}
		parts = append(parts, "Errors: "+strings.Join(preview, "; "))
	}
	if s.Persisted() == 0 {
		parts = append(parts, "No certificates created! Check your file format.")
	}
	return strings.Join(parts, " ")
}
