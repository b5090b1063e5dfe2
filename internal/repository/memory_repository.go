package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cityworks/complaint-service/internal/domain"
)

// memoryUserRepository serves a fixed user list.
type memoryUserRepository struct {
	users []domain.User
}

// NewMemoryUserRepository returns a read-only repository over the given users.
func NewMemoryUserRepository(users []domain.User) UserRepository {
	return &memoryUserRepository{users: append([]domain.User(nil), users...)}
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	return append([]domain.User{}, r.users...), nil
}

// memoryComplaintRepository keeps the complaint collection newest first.
// Every read-modify-write runs under mu.
type memoryComplaintRepository struct {
	mu         sync.RWMutex
	complaints []domain.Complaint
}

// NewMemoryComplaintRepository returns a repository seeded with complaints,
// which must already be ordered newest first.
func NewMemoryComplaintRepository(seed []domain.Complaint) ComplaintRepository {
	complaints := make([]domain.Complaint, 0, len(seed))
	for i := range seed {
		complaints = append(complaints, cloneComplaint(seed[i]))
	}
	return &memoryComplaintRepository{complaints: complaints}
}

func (r *memoryComplaintRepository) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.complaints {
		if strings.EqualFold(r.complaints[i].ID, complaint.ID) {
			return domain.ErrDuplicateID
		}
	}
	r.complaints = append([]domain.Complaint{cloneComplaint(*complaint)}, r.complaints...)
	return nil
}

func (r *memoryComplaintRepository) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.complaints {
		if strings.EqualFold(r.complaints[i].ID, id) {
			complaint := cloneComplaint(r.complaints[i])
			return &complaint, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryComplaintRepository) ListByUser(_ context.Context, userID string) ([]domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Complaint{}
	for i := range r.complaints {
		if r.complaints[i].UserID == userID {
			result = append(result, cloneComplaint(r.complaints[i]))
		}
	}
	return result, nil
}

func (r *memoryComplaintRepository) List(_ context.Context) ([]domain.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Complaint, 0, len(r.complaints))
	for i := range r.complaints {
		result = append(result, cloneComplaint(r.complaints[i]))
	}
	return result, nil
}

func (r *memoryComplaintRepository) UpdateStatus(_ context.Context, id string, status domain.ComplaintStatus, at time.Time) (*domain.Complaint, domain.ComplaintStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.complaints {
		if r.complaints[i].ID != id {
			continue
		}
		if !at.After(r.complaints[i].UpdatedAt) {
			at = r.complaints[i].UpdatedAt.Add(time.Microsecond)
		}
		previous := r.complaints[i].Status
		r.complaints[i].Status = status
		r.complaints[i].UpdatedAt = at
		complaint := cloneComplaint(r.complaints[i])
		return &complaint, previous, nil
	}
	return nil, "", domain.ErrNotFound
}

func cloneComplaint(c domain.Complaint) domain.Complaint {
	if c.ImageURL != nil {
		url := *c.ImageURL
		c.ImageURL = &url
	}
	return c
}
