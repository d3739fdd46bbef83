package usecase

import (
	"context"
	"errors"
	"net/http"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type experienceUsecase struct {
	store    domain.ProfileStore
	scorer   *CompletionScorer
	validate *validator.Validate
}

func NewExperienceUsecase(store domain.ProfileStore, scorer *CompletionScorer, validate *validator.Validate) domain.ExperienceUsecase {
	return &experienceUsecase{
		store:    store,
		scorer:   scorer,
		validate: validate,
	}
}

func (u *experienceUsecase) List(ctx context.Context, userID string) ([]domain.ProfessionalExperience, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	experiences, err := u.store.ListExperiences(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return experiences, nil
}

func (u *experienceUsecase) Create(ctx context.Context, userID string, input *domain.ExperienceInput) (*domain.ProfessionalExperience, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}
	if err := u.requireProfile(ctx, userID); err != nil {
		return nil, err
	}

	exp := &domain.ProfessionalExperience{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	applyExperienceInput(exp, input)

	if err := u.store.InsertExperience(ctx, exp); err != nil {
		return nil, storeFailure(err)
	}

	u.scorer.refreshQuietly(ctx, userID)
	return exp, nil
}

func (u *experienceUsecase) Update(ctx context.Context, userID, id string, input *domain.ExperienceInput) (*domain.ProfessionalExperience, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	// Scoped to the owner: another user's record reads as missing.
	exp, err := u.store.GetExperience(ctx, userID, id)
	if err != nil {
		return nil, experienceError(err)
	}
	applyExperienceInput(exp, input)

	if err := u.store.UpdateExperience(ctx, exp); err != nil {
		return nil, experienceError(err)
	}
	return exp, nil
}

func (u *experienceUsecase) Delete(ctx context.Context, userID, id string) error {
	if err := authorize(ctx, userID); err != nil {
		return err
	}
	if err := u.store.DeleteExperience(ctx, userID, id); err != nil {
		return experienceError(err)
	}

	u.scorer.refreshQuietly(ctx, userID)
	return nil
}

func (u *experienceUsecase) requireProfile(ctx context.Context, userID string) error {
	profile, err := u.store.GetProfileByID(ctx, userID)
	if err != nil {
		return storeFailure(err)
	}
	if profile == nil {
		return apperror.NotFound("Candidate profile not found")
	}
	return nil
}

func applyExperienceInput(exp *domain.ProfessionalExperience, input *domain.ExperienceInput) {
	exp.JobTitle = input.JobTitle
	exp.CompanyName = optional(input.CompanyName)
	exp.JobDuration = optional(input.JobDuration)
	exp.JobDescription = optional(input.JobDescription)
}

func experienceError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.New(http.StatusNotFound, "Experience not found", err)
	}
	return storeFailure(err)
}
