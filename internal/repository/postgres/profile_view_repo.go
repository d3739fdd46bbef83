package postgres

import (
	"context"
	"fmt"
)

// InsertView appends an anonymous view event; the timestamp comes from the column default.
func (r *profileStore) InsertView(ctx context.Context, profileID string) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO profile_views (profile_id) VALUES ($1)`, profileID); err != nil {
		return fmt.Errorf("failed to insert profile view: %w", err)
	}
	return nil
}

func (r *profileStore) CountViews(ctx context.Context, profileID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profile_views WHERE profile_id = $1`, profileID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profile views: %w", err)
	}
	return count, nil
}
