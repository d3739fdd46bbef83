package usecase

import (
	"context"
	"net/http"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"
	"childcare-cv-backend/pkg/logger"

	"go.uber.org/zap"
)

type publicProfileUsecase struct {
	store domain.ProfileStore
}

func NewPublicProfileUsecase(store domain.ProfileStore) domain.PublicProfileUsecase {
	return &publicProfileUsecase{store: store}
}

// errProfileNotAvailable is returned for unknown slugs and private profiles alike
// so callers cannot tell which profiles exist.
func errProfileNotAvailable() error {
	return apperror.New(http.StatusNotFound, "Profile not available", domain.ErrProfileNotFound)
}

// Resolve loads a public CV page by slug and records one view event for it.
func (u *publicProfileUsecase) Resolve(ctx context.Context, slug string) (*domain.PublicProfile, error) {
	log := logger.FromContext(ctx)

	profile, err := u.store.GetProfileBySlug(ctx, slug)
	if err != nil {
		return nil, storeFailure(err)
	}
	if profile == nil || !profile.IsPublic() {
		return nil, errProfileNotAvailable()
	}

	experiences, err := u.store.ListExperiences(ctx, profile.ID)
	if err != nil {
		return nil, storeFailure(err)
	}

	credentials, err := u.store.ListCredentials(ctx, profile.ID)
	if err != nil {
		return nil, storeFailure(err)
	}

	// Analytics must never fail the page.
	if err := u.store.InsertView(ctx, profile.ID); err != nil {
		log.Warn("Failed to record profile view", zap.String("profile_id", profile.ID), zap.Error(err))
	}

	viewCount, err := u.store.CountViews(ctx, profile.ID)
	if err != nil {
		log.Warn("Failed to count profile views", zap.String("profile_id", profile.ID), zap.Error(err))
		viewCount = 0
	}

	return &domain.PublicProfile{
		Profile:     profile,
		Experiences: experiences,
		Credentials: credentials,
		ViewCount:   viewCount,
	}, nil
}
