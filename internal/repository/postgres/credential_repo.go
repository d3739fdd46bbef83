package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"childcare-cv-backend/internal/domain"

	"github.com/jackc/pgx/v5"
)

const dateLayout = "2006-01-02"

const credentialColumns = `id, user_id, credential_type, title, institution, completion_date, description, proof_document_url, created_at, updated_at`

func scanCredential(row pgx.Row) (*domain.AcademicCredential, error) {
	var c domain.AcademicCredential
	var credType string
	var completion *time.Time
	err := row.Scan(&c.ID, &c.UserID, &credType, &c.Title, &c.Institution, &completion,
		&c.Description, &c.ProofDocumentURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.CredentialType = domain.CredentialType(credType)
	if completion != nil {
		s := completion.Format(dateLayout)
		c.CompletionDate = &s
	}
	return &c, nil
}

// parseDate converts the wire format to a DATE parameter; empty means NULL.
func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("invalid completion date %q: %w", *value, err)
	}
	return &t, nil
}

func (r *profileStore) CountCredentials(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM academic_credentials WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count academic credentials: %w", err)
	}
	return count, nil
}

func (r *profileStore) ListCredentials(ctx context.Context, userID string) ([]domain.AcademicCredential, error) {
	query := `SELECT ` + credentialColumns + ` FROM academic_credentials WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch academic credentials: %w", err)
	}
	defer rows.Close()

	credentials := []domain.AcademicCredential{}
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan academic credential: %w", err)
		}
		credentials = append(credentials, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic credentials: %w", err)
	}
	return credentials, nil
}

func (r *profileStore) GetCredential(ctx context.Context, userID, id string) (*domain.AcademicCredential, error) {
	query := `SELECT ` + credentialColumns + ` FROM academic_credentials WHERE id = $1 AND user_id = $2`
	c, err := scanCredential(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch academic credential: %w", err)
	}
	return c, nil
}

func (r *profileStore) InsertCredential(ctx context.Context, cred *domain.AcademicCredential) error {
	completion, err := parseDate(cred.CompletionDate)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO academic_credentials (
			id, user_id, credential_type, title, institution, completion_date, description, proof_document_url, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`
	err = r.db.QueryRow(ctx, query,
		cred.ID, cred.UserID, string(cred.CredentialType), cred.Title, cred.Institution,
		completion, cred.Description, cred.ProofDocumentURL,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert academic credential: %w", err)
	}
	return nil
}

func (r *profileStore) UpdateCredential(ctx context.Context, cred *domain.AcademicCredential) error {
	completion, err := parseDate(cred.CompletionDate)
	if err != nil {
		return err
	}

	query := `
		UPDATE academic_credentials
		SET credential_type = $1, title = $2, institution = $3, completion_date = $4,
		    description = $5, proof_document_url = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING created_at, updated_at`
	err = r.db.QueryRow(ctx, query,
		string(cred.CredentialType), cred.Title, cred.Institution, completion,
		cred.Description, cred.ProofDocumentURL, cred.ID, cred.UserID,
	).Scan(&cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update academic credential: %w", err)
	}
	return nil
}

func (r *profileStore) DeleteCredential(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM academic_credentials WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete academic credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
