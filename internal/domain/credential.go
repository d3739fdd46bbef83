package domain

import (
	"context"
	"time"
)

// CredentialType enumerates the kinds of academic credentials.
type CredentialType string

const (
	CredentialDegree        CredentialType = "degree"
	CredentialTraining      CredentialType = "training"
	CredentialCertification CredentialType = "certification"
)

func ValidCredentialTypes() []CredentialType {
	return []CredentialType{CredentialDegree, CredentialTraining, CredentialCertification}
}

func (t CredentialType) IsValid() bool {
	for _, valid := range ValidCredentialTypes() {
		if t == valid {
			return true
		}
	}
	return false
}

type AcademicCredential struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	CredentialType   CredentialType `json:"credential_type"`
	Title            string         `json:"title"`
	Institution      *string        `json:"institution"`
	CompletionDate   *string        `json:"completion_date"` // YYYY-MM-DD
	Description      *string        `json:"description"`
	ProofDocumentURL *string        `json:"proof_document_url"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type CredentialInput struct {
	CredentialType CredentialType `json:"credential_type" validate:"required,credential_type"`
	Title          string         `json:"title" validate:"required,min=2,max=200,no_emoji"`
	Institution    string         `json:"institution" validate:"omitempty,max=200"`
	CompletionDate string         `json:"completion_date" validate:"omitempty,iso_date,not_future"`
	Description    string         `json:"description" validate:"omitempty,max=2000"`
}

type CredentialUsecase interface {
	List(ctx context.Context, userID string) ([]AcademicCredential, error)
	Create(ctx context.Context, userID string, input *CredentialInput) (*AcademicCredential, error)
	Update(ctx context.Context, userID, id string, input *CredentialInput) (*AcademicCredential, error)
	Delete(ctx context.Context, userID, id string) error
}
