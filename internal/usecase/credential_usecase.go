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

type credentialUsecase struct {
	store    domain.ProfileStore
	scorer   *CompletionScorer
	validate *validator.Validate
}

func NewCredentialUsecase(store domain.ProfileStore, scorer *CompletionScorer, validate *validator.Validate) domain.CredentialUsecase {
	return &credentialUsecase{
		store:    store,
		scorer:   scorer,
		validate: validate,
	}
}

func (u *credentialUsecase) List(ctx context.Context, userID string) ([]domain.AcademicCredential, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	credentials, err := u.store.ListCredentials(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return credentials, nil
}

func (u *credentialUsecase) Create(ctx context.Context, userID string, input *domain.CredentialInput) (*domain.AcademicCredential, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	profile, err := u.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}

	cred := &domain.AcademicCredential{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	applyCredentialInput(cred, input)

	if err := u.store.InsertCredential(ctx, cred); err != nil {
		return nil, storeFailure(err)
	}

	u.scorer.refreshQuietly(ctx, userID)
	return cred, nil
}

func (u *credentialUsecase) Update(ctx context.Context, userID, id string, input *domain.CredentialInput) (*domain.AcademicCredential, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}
	if err := validateInput(u.validate, input); err != nil {
		return nil, err
	}

	cred, err := u.store.GetCredential(ctx, userID, id)
	if err != nil {
		return nil, credentialError(err)
	}
	// The proof document is managed by its own upload endpoint and survives edits.
	applyCredentialInput(cred, input)

	if err := u.store.UpdateCredential(ctx, cred); err != nil {
		return nil, credentialError(err)
	}
	return cred, nil
}

func (u *credentialUsecase) Delete(ctx context.Context, userID, id string) error {
	if err := authorize(ctx, userID); err != nil {
		return err
	}
	if err := u.store.DeleteCredential(ctx, userID, id); err != nil {
		return credentialError(err)
	}

	u.scorer.refreshQuietly(ctx, userID)
	return nil
}

func applyCredentialInput(cred *domain.AcademicCredential, input *domain.CredentialInput) {
	cred.CredentialType = input.CredentialType
	cred.Title = input.Title
	cred.Institution = optional(input.Institution)
	cred.CompletionDate = optional(input.CompletionDate)
	cred.Description = optional(input.Description)
}

func credentialError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.New(http.StatusNotFound, "Academic credential not found", err)
	}
	return storeFailure(err)
}
