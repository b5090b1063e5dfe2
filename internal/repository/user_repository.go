package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cityworks/complaint-service/internal/domain"
)

// UserRepository defines read access to the seeded users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail matches the email case-insensitively.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users in seed order.
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool DB) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, role, submitted_issues, resolved_issues`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE LOWER(email)=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY position`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := scanUser(r.pool.QueryRow(ctx, query, arg), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.SubmittedIssues,
		&user.ResolvedIssues,
	); err != nil {
		return err
	}
	if !user.Role.Valid() {
		return fmt.Errorf("user %s: unknown role %q", user.ID, user.Role)
	}
	return nil
}
