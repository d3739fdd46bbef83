package domain

import "context"

// ProfileStore is the persistence contract for profiles and their dependent records.
// Lookups return (nil, nil) when the record is absent.
type ProfileStore interface {
	GetProfileByID(ctx context.Context, id string) (*CandidateProfile, error)
	GetProfileBySlug(ctx context.Context, slug string) (*CandidateProfile, error)
	InsertProfile(ctx context.Context, profile *CandidateProfile) (*CandidateProfile, error)
	UpdateProfileFields(ctx context.Context, id string, fields ProfileFields) error
	DeleteProfile(ctx context.Context, id string) error

	CountExperiences(ctx context.Context, userID string) (int, error)
	ListExperiences(ctx context.Context, userID string) ([]ProfessionalExperience, error)
	GetExperience(ctx context.Context, userID, id string) (*ProfessionalExperience, error)
	InsertExperience(ctx context.Context, exp *ProfessionalExperience) error
	UpdateExperience(ctx context.Context, exp *ProfessionalExperience) error
	DeleteExperience(ctx context.Context, userID, id string) error

	CountCredentials(ctx context.Context, userID string) (int, error)
	ListCredentials(ctx context.Context, userID string) ([]AcademicCredential, error)
	GetCredential(ctx context.Context, userID, id string) (*AcademicCredential, error)
	InsertCredential(ctx context.Context, cred *AcademicCredential) error
	UpdateCredential(ctx context.Context, cred *AcademicCredential) error
	DeleteCredential(ctx context.Context, userID, id string) error

	InsertView(ctx context.Context, profileID string) error
	CountViews(ctx context.Context, profileID string) (int, error)
}
