package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cityworks/complaint-service/internal/domain"
	"github.com/cityworks/complaint-service/internal/seed"
)

func TestMemoryUserRepository_GetByEmailIgnoresCase(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository(seed.Users())

	user, err := repo.GetByEmail(context.Background(), "USER1@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryUserRepository_ListKeepsSeedOrder(t *testing.T) {
	t.Parallel()

	repo := NewMemoryUserRepository(seed.Users())
	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 4)
	assert.Equal(t, "user-1", users[0].ID)
	assert.Equal(t, "admin-1", users[3].ID)
}

func TestMemoryComplaintRepository_CreatePrepends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryComplaintRepository(seed.Complaints())

	now := time.Now()
	err := repo.Create(ctx, &domain.Complaint{ID: "CMPT-005", UserID: "user-2", Status: domain.ComplaintStatusPending, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "CMPT-005", all[0].ID)

	mine, err := repo.ListByUser(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "CMPT-005", mine[0].ID)
}

func TestMemoryComplaintRepository_CreateRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	repo := NewMemoryComplaintRepository(seed.Complaints())
	err := repo.Create(context.Background(), &domain.Complaint{ID: "cmpt-001"})
	require.ErrorIs(t, err, domain.ErrDuplicateID)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryComplaintRepository_GetByIDIgnoresCase(t *testing.T) {
	t.Parallel()

	repo := NewMemoryComplaintRepository(seed.Complaints())

	complaint, err := repo.GetByID(context.Background(), "cmpt-002")
	require.NoError(t, err)
	assert.Equal(t, "CMPT-002", complaint.ID)

	_, err = repo.GetByID(context.Background(), "CMPT-999")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryComplaintRepository_ReturnsSnapshots(t *testing.T) {
	t.Parallel()

	repo := NewMemoryComplaintRepository(seed.Complaints())
	complaint, err := repo.GetByID(context.Background(), "CMPT-001")
	require.NoError(t, err)

	complaint.Status = domain.ComplaintStatusResolved
	*complaint.ImageURL = "mutated"

	again, err := repo.GetByID(context.Background(), "CMPT-001")
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusPending, again.Status)
	assert.NotEqual(t, "mutated", *again.ImageURL)
}

func TestMemoryComplaintRepository_UpdateStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryComplaintRepository(seed.Complaints())
	before, err := repo.GetByID(ctx, "CMPT-001")
	require.NoError(t, err)

	// a clock that has not moved still yields a later UpdatedAt
	updated, previous, err := repo.UpdateStatus(ctx, "CMPT-001", domain.ComplaintStatusPending, before.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusPending, updated.Status)
	assert.Equal(t, domain.ComplaintStatusPending, previous)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)

	_, _, err = repo.UpdateStatus(ctx, "cmpt-001", domain.ComplaintStatusResolved, time.Now())
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, previous, err = repo.UpdateStatus(ctx, "CMPT-001", domain.ComplaintStatusResolved, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusPending, previous)

	_, previous, err = repo.UpdateStatus(ctx, "CMPT-001", domain.ComplaintStatusInProgress, time.Now())
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusResolved, previous)
}

func TestMemoryComplaintRepository_ConcurrentCreates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryComplaintRepository(nil)
	seq := NewMemorySequence(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := seq.Next(ctx)
			assert.NoError(t, err)
			assert.NoError(t, repo.Create(ctx, &domain.Complaint{ID: id}))
		}()
	}
	wg.Wait()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func TestMemorySequence_Next(t *testing.T) {
	t.Parallel()

	seq := NewMemorySequence(4)
	id, err := seq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CMPT-005", id)
	id, err = seq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CMPT-006", id)
}
