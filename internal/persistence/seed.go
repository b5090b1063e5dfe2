package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cityworks/complaint-service/internal/domain"
)

// SeedPostgres loads the fixed dataset into an empty database. Rows that
// already exist are left alone, and complaint_seq is moved past the highest
// seeded id.
func SeedPostgres(ctx context.Context, pool *pgxpool.Pool, users []domain.User, complaints []domain.Complaint, maxSeq int64, logger *zap.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for i, u := range users {
		batch.Queue(`
            INSERT INTO users (id, name, email, role, submitted_issues, resolved_issues, position)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            ON CONFLICT (id) DO NOTHING`,
			u.ID, u.Name, u.Email, u.Role, u.SubmittedIssues, u.ResolvedIssues, i)
	}
	for _, c := range complaints {
		batch.Queue(`
            INSERT INTO complaints (id, title, description, latitude, longitude, address, image_url,
                status, user_id, user_email, created_at, updated_at)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
            ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Title, c.Description, c.Location.Lat, c.Location.Lng, c.Location.Address, c.ImageURL,
			c.Status, c.UserID, c.UserEmail, c.CreatedAt, c.UpdatedAt)
	}
	if maxSeq > 0 {
		batch.Queue(`SELECT setval('complaint_seq', GREATEST($1, (SELECT last_value FROM complaint_seq)))`, maxSeq)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	logger.Info("seed data ensured", zap.Int("users", len(users)), zap.Int("complaints", len(complaints)))
	return nil
}
