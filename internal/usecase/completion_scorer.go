package usecase

import (
	"context"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	personalFields   = 5
	employmentFlag   = 1
	currentJobFields = 3
	idealExperiences = 3
	idealCredentials = 2
)

// CompletionScorer computes how complete a candidate profile is and stores the result on it.
type CompletionScorer struct {
	store domain.ProfileStore
}

func NewCompletionScorer(store domain.ProfileStore) *CompletionScorer {
	return &CompletionScorer{store: store}
}

// Score returns the completion percentage in [0, 100]. A nil profile scores 0.
//
// Declaring "currently employed" adds the three current-job fields to the
// denominator, so an employed candidate with blank job fields scores lower
// than one who declared not being employed.
func Score(profile *domain.CandidateProfile, experienceCount, credentialCount int) int {
	if profile == nil {
		return 0
	}

	points, total := 0, 0

	for _, field := range []*string{
		profile.FirstName, profile.LastName, profile.City, profile.Department, profile.ProfilePhotoURL,
	} {
		if filled(field) {
			points++
		}
	}
	total += personalFields

	if profile.CurrentlyEmployed != nil {
		points++
		if *profile.CurrentlyEmployed {
			for _, field := range []*string{
				profile.CurrentJobTitle, profile.CurrentJobDuration, profile.CurrentJobDescription,
			} {
				if filled(field) {
					points++
				}
			}
			total += currentJobFields
		}
	}
	total += employmentFlag

	if experienceCount > 0 {
		points += min(experienceCount, idealExperiences)
	}
	total += idealExperiences

	if credentialCount > 0 {
		points += min(credentialCount, idealCredentials)
	}
	total += idealCredentials

	return roundPercent(points, total)
}

// Score is the method form of the package-level Score.
func (s *CompletionScorer) Score(profile *domain.CandidateProfile, experienceCount, credentialCount int) int {
	return Score(profile, experienceCount, credentialCount)
}

// ScoreAndPersist computes the score and writes it to the profile. The score is
// returned even when the write fails; the failure comes back as a
// *domain.SoftWriteError and is not retried.
func (s *CompletionScorer) ScoreAndPersist(ctx context.Context, profileID string, profile *domain.CandidateProfile, experienceCount, credentialCount int) (int, error) {
	score := Score(profile, experienceCount, credentialCount)

	err := s.store.UpdateProfileFields(ctx, profileID, domain.ProfileFields{CompletionPercentage: &score})
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to persist completion percentage",
			zap.String("profile_id", profileID),
			zap.Int("percentage", score),
			zap.Error(err),
		)
		return score, &domain.SoftWriteError{Op: "persist completion percentage", Err: err}
	}

	if profile != nil {
		profile.ProfileCompletionPercentage = score
	}
	return score, nil
}

// roundPercent rounds 100*points/total half up using integer arithmetic only.
func roundPercent(points, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*points + total) / (2 * total)
}

func filled(s *string) bool {
	return s != nil && *s != ""
}

// Refresh reloads the profile and its counts, then rescores. Used after any
// mutation that can change the score; callers treat every error as soft.
func (s *CompletionScorer) Refresh(ctx context.Context, profileID string) (int, error) {
	profile, err := s.store.GetProfileByID(ctx, profileID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, domain.ErrNotFound
	}
	experienceCount, err := s.store.CountExperiences(ctx, profileID)
	if err != nil {
		return 0, err
	}
	credentialCount, err := s.store.CountCredentials(ctx, profileID)
	if err != nil {
		return 0, err
	}
	return s.ScoreAndPersist(ctx, profileID, profile, experienceCount, credentialCount)
}

// refreshQuietly rescores and only logs failures.
func (s *CompletionScorer) refreshQuietly(ctx context.Context, profileID string) {
	if _, err := s.Refresh(ctx, profileID); err != nil && !domain.IsSoftWriteFailure(err) {
		logger.FromContext(ctx).Warn("Failed to refresh completion percentage",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
	}
}
