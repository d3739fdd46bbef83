package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"childcare-cv-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type profileStore struct {
	db *pgxpool.Pool
}

func NewProfileStore(db *pgxpool.Pool) domain.ProfileStore {
	return &profileStore{db: db}
}

const profileColumns = `
	id, first_name, last_name, city, department, profile_photo_url,
	currently_employed, current_job_title, current_job_duration, current_job_description,
	public_profile_enabled, unique_profile_slug, COALESCE(profile_completion_percentage, 0),
	created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.CandidateProfile, error) {
	var p domain.CandidateProfile
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.City, &p.Department, &p.ProfilePhotoURL,
		&p.CurrentlyEmployed, &p.CurrentJobTitle, &p.CurrentJobDuration, &p.CurrentJobDescription,
		&p.PublicProfileEnabled, &p.UniqueProfileSlug, &p.ProfileCompletionPercentage,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileStore) GetProfileByID(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM candidate_profiles WHERE id = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return p, nil
}

func (r *profileStore) GetProfileBySlug(ctx context.Context, slug string) (*domain.CandidateProfile, error) {
	// Exact, case-sensitive match
	query := `SELECT ` + profileColumns + ` FROM candidate_profiles WHERE unique_profile_slug = $1`
	p, err := scanProfile(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile by slug: %w", err)
	}
	return p, nil
}

func (r *profileStore) InsertProfile(ctx context.Context, profile *domain.CandidateProfile) (*domain.CandidateProfile, error) {
	// ON CONFLICT keeps concurrent first visits from failing; the existing row wins.
	query := `
		INSERT INTO candidate_profiles (id, first_name, last_name, profile_completion_percentage, public_profile_enabled)
		VALUES ($1, $2, $3, $4, FALSE)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRow(ctx, query,
		profile.ID, profile.FirstName, profile.LastName, profile.ProfileCompletionPercentage,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return p, nil
}

func (r *profileStore) UpdateProfileFields(ctx context.Context, id string, f domain.ProfileFields) error {
	if f.IsEmpty() {
		return nil
	}

	sets := make([]string, 0, 12)
	args := make([]any, 0, 13)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.FirstName != nil {
		set("first_name", *f.FirstName)
	}
	if f.LastName != nil {
		set("last_name", *f.LastName)
	}
	if f.City != nil {
		set("city", *f.City)
	}
	if f.Department != nil {
		set("department", *f.Department)
	}
	if f.ProfilePhotoURL != nil {
		set("profile_photo_url", *f.ProfilePhotoURL)
	}
	if f.CurrentlyEmployed != nil {
		set("currently_employed", *f.CurrentlyEmployed)
	}
	if f.ClearCurrentJob {
		sets = append(sets, "current_job_title = NULL", "current_job_duration = NULL", "current_job_description = NULL")
	} else {
		if f.CurrentJobTitle != nil {
			set("current_job_title", *f.CurrentJobTitle)
		}
		if f.CurrentJobDuration != nil {
			set("current_job_duration", *f.CurrentJobDuration)
		}
		if f.CurrentJobDescription != nil {
			set("current_job_description", *f.CurrentJobDescription)
		}
	}
	if f.PublicProfileEnabled != nil {
		set("public_profile_enabled", *f.PublicProfileEnabled)
	}
	if f.UniqueProfileSlug != nil {
		set("unique_profile_slug", *f.UniqueProfileSlug)
	}
	if f.CompletionPercentage != nil {
		set("profile_completion_percentage", *f.CompletionPercentage)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE candidate_profiles SET %s, updated_at = NOW() WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileStore) DeleteProfile(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Children first so the delete does not depend on ON DELETE CASCADE being present.
	for _, stmt := range []string{
		`DELETE FROM profile_views WHERE profile_id = $1`,
		`DELETE FROM professional_experiences WHERE user_id = $1`,
		`DELETE FROM academic_credentials WHERE user_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("failed to delete profile children: %w", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM candidate_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
