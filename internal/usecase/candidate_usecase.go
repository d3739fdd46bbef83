package usecase

import (
	"context"
	"errors"
	"net/http"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"
	"childcare-cv-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const slugAttempts = 3

type candidateUsecase struct {
	store    domain.ProfileStore
	scorer   *CompletionScorer
	validate *validator.Validate
}

func NewCandidateUsecase(store domain.ProfileStore, scorer *CompletionScorer, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		store:    store,
		scorer:   scorer,
		validate: validate,
	}
}

// GetOrCreateProfile returns the caller's profile, creating it on first access
// with the names carried by the identity token.
func (u *candidateUsecase) GetOrCreateProfile(ctx context.Context, userID string, seed domain.ProfileSeed) (*domain.CandidateProfile, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	return u.getOrCreate(ctx, userID, seed)
}

func (u *candidateUsecase) getOrCreate(ctx context.Context, userID string, seed domain.ProfileSeed) (*domain.CandidateProfile, error) {
	profile, err := u.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if profile != nil {
		return profile, nil
	}

	logger.FromContext(ctx).Info("Creating candidate profile", zap.String("profile_id", userID))
	profile, err = u.store.InsertProfile(ctx, &domain.CandidateProfile{
		ID:        userID,
		FirstName: optional(seed.FirstName),
		LastName:  optional(seed.LastName),
	})
	if err != nil {
		return nil, storeFailure(err)
	}
	return profile, nil
}

func (u *candidateUsecase) GetDashboard(ctx context.Context, userID string, seed domain.ProfileSeed) (*domain.Dashboard, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := u.getOrCreate(ctx, userID, seed)
	if err != nil {
		return nil, err
	}

	experienceCount, err := u.store.CountExperiences(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	credentialCount, err := u.store.CountCredentials(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}

	// A failed write is already logged by the scorer; the computed value is still shown.
	percentage, _ := u.scorer.ScoreAndPersist(ctx, userID, profile, experienceCount, credentialCount)

	viewCount, err := u.store.CountViews(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to count profile views", zap.String("profile_id", userID), zap.Error(err))
		viewCount = 0
	}

	return &domain.Dashboard{
		Profile:                  profile,
		ExperiencesCount:         experienceCount,
		AcademicCredentialsCount: credentialCount,
		CompletionPercentage:     percentage,
		ViewCount:                viewCount,
	}, nil
}

func (u *candidateUsecase) UpdatePersonalInfo(ctx context.Context, userID string, input *domain.PersonalInfoInput) (*domain.CandidateProfile, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	if _, err := u.getOrCreate(ctx, userID, domain.ProfileSeed{}); err != nil {
		return nil, err
	}

	fields := domain.ProfileFields{
		FirstName:       &input.FirstName,
		LastName:        &input.LastName,
		City:            &input.City,
		Department:      &input.Department,
		ProfilePhotoURL: &input.ProfilePhotoURL,
	}
	if err := u.store.UpdateProfileFields(ctx, userID, fields); err != nil {
		return nil, storeFailure(err)
	}

	return u.reload(ctx, userID)
}

func (u *candidateUsecase) UpdateProfessionalInfo(ctx context.Context, userID string, input *domain.ProfessionalInfoInput) (*domain.CandidateProfile, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	if _, err := u.getOrCreate(ctx, userID, domain.ProfileSeed{}); err != nil {
		return nil, err
	}

	fields := domain.ProfileFields{CurrentlyEmployed: input.CurrentlyEmployed}
	if *input.CurrentlyEmployed {
		fields.CurrentJobTitle = &input.CurrentJobTitle
		fields.CurrentJobDuration = &input.CurrentJobDuration
		fields.CurrentJobDescription = &input.CurrentJobDescription
	} else {
		fields.ClearCurrentJob = true
	}
	if err := u.store.UpdateProfileFields(ctx, userID, fields); err != nil {
		return nil, storeFailure(err)
	}

	return u.reload(ctx, userID)
}

// SetVisibility publishes or hides the public CV page. The slug is generated on
// first publication and kept afterwards so shared links stay valid.
func (u *candidateUsecase) SetVisibility(ctx context.Context, userID string, enabled bool) (*domain.CandidateProfile, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := u.getOrCreate(ctx, userID, domain.ProfileSeed{})
	if err != nil {
		return nil, err
	}

	fields := domain.ProfileFields{PublicProfileEnabled: &enabled}
	needsSlug := enabled && (profile.UniqueProfileSlug == nil || *profile.UniqueProfileSlug == "")

	if !needsSlug {
		if err := u.store.UpdateProfileFields(ctx, userID, fields); err != nil {
			return nil, storeFailure(err)
		}
		return u.reload(ctx, userID)
	}

	first, last := deref(profile.FirstName), deref(profile.LastName)
	for attempt := 1; attempt <= slugAttempts; attempt++ {
		slug := generateSlug(first, last)
		fields.UniqueProfileSlug = &slug

		err = u.store.UpdateProfileFields(ctx, userID, fields)
		if err == nil {
			logger.FromContext(ctx).Info("Public profile enabled",
				zap.String("profile_id", userID),
				zap.String("slug", slug),
			)
			return u.reload(ctx, userID)
		}
		if !errors.Is(err, domain.ErrSlugTaken) {
			return nil, storeFailure(err)
		}
		logger.FromContext(ctx).Warn("Generated slug already taken, retrying",
			zap.String("profile_id", userID),
			zap.Int("attempt", attempt),
		)
	}

	return nil, apperror.New(http.StatusConflict, "Could not generate a unique profile link, please try again", err)
}

func (u *candidateUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if err := authorize(ctx, userID); err != nil {
		return err
	}

	if err := u.store.DeleteProfile(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Candidate profile not found")
		}
		return storeFailure(err)
	}

	logger.FromContext(ctx).Info("Candidate profile deleted", zap.String("profile_id", userID))
	return nil
}

// reload rescores after a write and returns the stored profile.
func (u *candidateUsecase) reload(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	u.scorer.refreshQuietly(ctx, userID)

	profile, err := u.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}
	return profile, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
