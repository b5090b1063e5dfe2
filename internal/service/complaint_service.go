package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cityworks/complaint-service/internal/domain"
	"github.com/cityworks/complaint-service/internal/events"
	"github.com/cityworks/complaint-service/internal/repository"
	apperrors "github.com/cityworks/complaint-service/pkg/util/errorutil"
)

// IDGenerator hands out unique complaint ids in increasing order.
type IDGenerator interface {
	Next(ctx context.Context) (string, error)
}

// ComplaintService owns the complaint collection. Callers receive snapshots
// and route every mutation through it.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	ids        IDGenerator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	IDs           IDGenerator
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	svc := &ComplaintService{
		complaints: deps.ComplaintRepo,
		ids:        deps.IDs,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// GetByID looks a complaint up ignoring case. A missing complaint is reported
// through ok, not as an error.
func (s *ComplaintService) GetByID(ctx context.Context, id string) (complaint *domain.Complaint, ok bool, err error) {
	complaint, err = s.complaints.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return complaint, true, nil
}

// ListByUser returns the user's complaints, newest first.
func (s *ComplaintService) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	return s.complaints.ListByUser(ctx, userID)
}

// List returns every complaint, newest first.
func (s *ComplaintService) List(ctx context.Context) ([]domain.Complaint, error) {
	return s.complaints.List(ctx)
}

// Add files a new complaint on behalf of the draft's owner. actor is the
// signed-in caller recorded on the created event.
func (s *ComplaintService) Add(ctx context.Context, actor *domain.User, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	if draft.UserID == "" || draft.UserEmail == "" {
		return nil, apperrors.NewUnauthorized("signed-in identity required")
	}
	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	complaint := &domain.Complaint{
		ID:          id,
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Location:    draft.Location,
		ImageURL:    draft.ImageURL,
		Status:      domain.ComplaintStatusPending,
		UserID:      draft.UserID,
		UserEmail:   draft.UserEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}

	s.logger.Info("complaint filed", zap.String("complaint_id", complaint.ID), zap.String("user_id", complaint.UserID))
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       actorOf(actor),
		Payload: events.ComplaintCreatedPayload{
			Title:     complaint.Title,
			UserID:    complaint.UserID,
			UserEmail: complaint.UserEmail,
			Address:   complaint.Location.Address,
		},
	})
	return complaint, nil
}

// UpdateStatus moves a complaint to status. Any status may follow any other,
// and reassigning the current status still refreshes UpdatedAt.
func (s *ComplaintService) UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if _, err := domain.ParseComplaintStatus(string(status)); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"status": status})
	}

	complaint, oldStatus, err := s.complaints.UpdateStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("complaint_id", complaint.ID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(complaint.Status)),
	}
	if actor != nil {
		fields = append(fields, zap.String("actor_id", actor.ID))
	}
	s.logger.Info("complaint status updated", fields...)

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: complaint.ID,
		Actor:       actorOf(actor),
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: complaint.Status,
			UserEmail: complaint.UserEmail,
		},
	})
	return complaint, nil
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: user.ID, Role: user.Role}
}
