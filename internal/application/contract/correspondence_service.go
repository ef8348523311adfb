package contract

import (
	"context"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CorrespondenceService handles contractual correspondence dialogs and their
// messages.
type CorrespondenceService struct {
	dialogRepo contract.DialogRepository
}

// NewCorrespondenceService creates a new CorrespondenceService
func NewCorrespondenceService(dialogRepo contract.DialogRepository) *CorrespondenceService {
	return &CorrespondenceService{dialogRepo: dialogRepo}
}

// CreateDialog opens a correspondence thread on a project
func (s *CorrespondenceService) CreateDialog(ctx context.Context, projectID uuid.UUID, req CreateDialogRequest) (*DialogResponse, error) {
	d := contract.NewDialog(projectID, req.Subject, contract.CorrespondenceDirection(req.Direction), req.CreatedBy)
	if err := s.dialogRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDialogResponse(d)
	return &resp, nil
}

// GetDialog returns a single dialog within its project
func (s *CorrespondenceService) GetDialog(ctx context.Context, projectID, id uuid.UUID) (*DialogResponse, error) {
	d, err := s.dialogRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	resp := ToDialogResponse(d)
	return &resp, nil
}

// UpdateDialog renames a correspondence thread
func (s *CorrespondenceService) UpdateDialog(ctx context.Context, projectID, id uuid.UUID, req UpdateDialogRequest) (*DialogResponse, error) {
	d, err := s.dialogRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	d.Subject = req.Subject
	if err := s.dialogRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	resp := ToDialogResponse(d)
	return &resp, nil
}

// ListDialogs returns the project's correspondence threads
func (s *CorrespondenceService) ListDialogs(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]DialogResponse, error) {
	dialogs, err := s.dialogRepo.FindAllForProject(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]DialogResponse, len(dialogs))
	for i := range dialogs {
		result[i] = ToDialogResponse(&dialogs[i])
	}
	return result, nil
}

// AppendMessage adds a message to a dialog. Sender and receiver are stored
// exactly as supplied.
func (s *CorrespondenceService) AppendMessage(ctx context.Context, projectID, dialogID uuid.UUID, req CreateMessageRequest) (*MessageResponse, error) {
	if _, err := s.dialogRepo.FindByIDForProject(ctx, projectID, dialogID); err != nil {
		return nil, err
	}

	m := contract.NewMessage(dialogID, req.Sender, req.Receiver, req.Body, req.CreatedBy)
	m.SentAt = req.SentAt
	if err := s.dialogRepo.SaveMessage(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMessageResponse(m)
	return &resp, nil
}

// ListMessages returns a dialog's messages in capture order
func (s *CorrespondenceService) ListMessages(ctx context.Context, projectID, dialogID uuid.UUID) ([]MessageResponse, error) {
	if _, err := s.dialogRepo.FindByIDForProject(ctx, projectID, dialogID); err != nil {
		return nil, err
	}
	messages, err := s.dialogRepo.FindMessages(ctx, dialogID)
	if err != nil {
		return nil, err
	}
	result := make([]MessageResponse, len(messages))
	for i := range messages {
		result[i] = ToMessageResponse(&messages[i])
	}
	return result, nil
}

// DeleteDialog soft deletes a correspondence thread
func (s *CorrespondenceService) DeleteDialog(ctx context.Context, projectID, id uuid.UUID) error {
	return s.dialogRepo.DeleteForProject(ctx, projectID, id)
}
