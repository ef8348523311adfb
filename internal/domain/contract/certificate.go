package contract

import (
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CertificateStatus is the workflow state of a payment certificate.
type CertificateStatus string

const (
	CertificateDraft     CertificateStatus = "DRAFT"
	CertificateSubmitted CertificateStatus = "SUBMITTED"
	CertificateApproved  CertificateStatus = "APPROVED"
	CertificateRejected  CertificateStatus = "REJECTED"
)

var certificateTransitions = map[CertificateStatus][]CertificateStatus{
	CertificateDraft:     {CertificateSubmitted},
	CertificateSubmitted: {CertificateApproved, CertificateRejected},
}

// CanTransition reports whether the status may move to the target state.
func (s CertificateStatus) CanTransition(to CertificateStatus) bool {
	for _, allowed := range certificateTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Certificate is a payment certificate sent to the client. Certificates are
// numbered sequentially per project; item transactions reference them so
// balances can be computed as at any certificate.
type Certificate struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Number    int
	Status    CertificateStatus
	IsFinal   bool
	Notes     string
}

// NewCertificate creates a draft certificate with the given sequence number.
func NewCertificate(projectID uuid.UUID, number int) *Certificate {
	return &Certificate{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Number:     number,
		Status:     CertificateDraft,
	}
}

// Transition moves the certificate workflow state.
func (c *Certificate) Transition(to CertificateStatus) error {
	if c.Deleted {
		return shared.ErrRecordDeleted
	}
	if !c.Status.CanTransition(to) {
		return shared.ErrInvalidState
	}
	c.Status = to
	c.UpdatedAt = time.Now()
	return nil
}
