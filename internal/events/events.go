// Package events announces issuance and verification outcomes to other
// services. Publishing is best effort and never fails the caller's operation.
package events

import (
	"context"
	"time"
)

const (
	RoutingIssued   = "certificate.issued"
	RoutingVerified = "certificate.verified"
	RoutingRevoked  = "certificate.revoked"
)

type CertificateIssued struct {
	CertificateID string    `json:"certificate_id"`
	InstitutionID uint      `json:"institution_id"`
	StudentID     uint      `json:"student_id"`
	Variant       string    `json:"certificate_type"`
	HashCode      string    `json:"hash_code"`
	Created       bool      `json:"created"`
	IssuedAt      time.Time `json:"issued_at"`
}

type CertificateVerified struct {
	CertificateID string    `json:"certificate_id"`
	MatchStatus   string    `json:"match_status"`
	Revoked       bool      `json:"revoked"`
	VerifiedAt    time.Time `json:"verified_at"`
}

type CertificateRevoked struct {
	CertificateID string    `json:"certificate_id"`
	InstitutionID uint      `json:"institution_id"`
	RevokedAt     time.Time `json:"revoked_at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close()
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

func (Nop) Close() {}

// Recorder keeps published events in memory.
type Recorder struct {
	Events []Recorded
}

type Recorded struct {
	RoutingKey string
	Event      any
}

func (r *Recorder) Publish(_ context.Context, routingKey string, event any) error {
	r.Events = append(r.Events, Recorded{RoutingKey: routingKey, Event: event})
	return nil
}

func (r *Recorder) Close() {}
