package contract

import (
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CorrespondenceDirection says which way a dialog travels.
type CorrespondenceDirection string

const (
	DirectionIncoming CorrespondenceDirection = "INCOMING"
	DirectionOutgoing CorrespondenceDirection = "OUTGOING"
)

// Dialog is a thread of contractual correspondence on a project.
type Dialog struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Subject   string
	Direction CorrespondenceDirection
	CreatedBy uuid.UUID
}

// NewDialog creates a correspondence thread.
func NewDialog(projectID uuid.UUID, subject string, direction CorrespondenceDirection, createdBy uuid.UUID) *Dialog {
	return &Dialog{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Subject:    subject,
		Direction:  direction,
		CreatedBy:  createdBy,
	}
}

// Message is one entry in a correspondence dialog.
//
// Sender and Receiver are caller-supplied free text and are never derived
// from the authenticated identity. Historical rows were populated
// inconsistently and had to be blanked by a corrective migration; the
// correct population rule is still awaiting product clarification.
type Message struct {
	shared.BaseEntity
	DialogID  uuid.UUID
	Sender    string
	Receiver  string
	Body      string
	SentAt    *time.Time
	CreatedBy uuid.UUID
}

// NewMessage appends a message to a dialog.
func NewMessage(dialogID uuid.UUID, sender, receiver, body string, createdBy uuid.UUID) *Message {
	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		DialogID:   dialogID,
		Sender:     sender,
		Receiver:   receiver,
		Body:       body,
		CreatedBy:  createdBy,
	}
}
