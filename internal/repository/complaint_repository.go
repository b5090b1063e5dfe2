package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cityworks/complaint-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. Lists are ordered
// newest first.
type ComplaintRepository interface {
	// Create stores a new complaint. It returns domain.ErrDuplicateID when the id is taken.
	Create(ctx context.Context, complaint *domain.Complaint) error
	// GetByID matches the id case-insensitively.
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	// UpdateStatus matches the id exactly, sets the status and moves UpdatedAt
	// to at, or just past the previous value when at is not later. It also
	// returns the status the complaint held right before the write.
	UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, at time.Time) (*domain.Complaint, domain.ComplaintStatus, error)
}

// DB is the part of a pgx pool the Postgres repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type complaintRepository struct {
	pool DB
}

// NewComplaintRepository instantiates a Postgres-backed repository.
func NewComplaintRepository(pool DB) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, title, description, latitude, longitude, address, image_url,
               status, user_id, user_email, created_at, updated_at`

// complaintOrder puts newer complaints first. Ids compare by length before
// text so CMPT-1000 sorts above CMPT-999.
const complaintOrder = ` ORDER BY created_at DESC, LENGTH(id) DESC, id DESC`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (id, title, description, latitude, longitude, address, image_url,
            status, user_id, user_email, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        ON CONFLICT DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query,
		complaint.ID,
		complaint.Title,
		complaint.Description,
		complaint.Location.Lat,
		complaint.Location.Lng,
		complaint.Location.Address,
		complaint.ImageURL,
		complaint.Status,
		complaint.UserID,
		complaint.UserEmail,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicateID
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE LOWER(id)=LOWER($1)`
	var complaint domain.Complaint
	if err := scanComplaint(r.pool.QueryRow(ctx, query, id), &complaint); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE user_id=$1` + complaintOrder
	return r.list(ctx, query, userID)
}

func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints` + complaintOrder
	return r.list(ctx, query)
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus, at time.Time) (*domain.Complaint, domain.ComplaintStatus, error) {
	const query = `
        WITH prev AS (
            SELECT id, status FROM complaints WHERE id=$3 FOR UPDATE
        )
        UPDATE complaints c
        SET status=$1, updated_at=GREATEST($2, c.updated_at + INTERVAL '1 microsecond')
        FROM prev
        WHERE c.id=prev.id
        RETURNING prev.status, c.id, c.title, c.description, c.latitude, c.longitude, c.address,
               c.image_url, c.status, c.user_id, c.user_email, c.created_at, c.updated_at`
	var (
		previous  domain.ComplaintStatus
		complaint domain.Complaint
	)
	err := r.pool.QueryRow(ctx, query, status, at, id).Scan(
		&previous,
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Location.Lat,
		&complaint.Location.Lng,
		&complaint.Location.Address,
		&complaint.ImageURL,
		&complaint.Status,
		&complaint.UserID,
		&complaint.UserEmail,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}
	return &complaint, previous, nil
}

func (r *complaintRepository) list(ctx context.Context, query string, args ...any) ([]domain.Complaint, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Complaint{}
	for rows.Next() {
		var complaint domain.Complaint
		if err := scanComplaint(rows, &complaint); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}

func scanComplaint(row pgx.Row, complaint *domain.Complaint) error {
	return row.Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Location.Lat,
		&complaint.Location.Lng,
		&complaint.Location.Address,
		&complaint.ImageURL,
		&complaint.Status,
		&complaint.UserID,
		&complaint.UserEmail,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
}
