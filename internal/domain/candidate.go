package domain

import (
	"context"
	"time"
)

// CandidateProfile is the per-user CV record. ID equals the identity provider's user id.
type CandidateProfile struct {
	ID                          string    `json:"id"`
	FirstName                   *string   `json:"first_name"`
	LastName                    *string   `json:"last_name"`
	City                        *string   `json:"city"`
	Department                  *string   `json:"department"`
	ProfilePhotoURL             *string   `json:"profile_photo_url"`
	CurrentlyEmployed           *bool     `json:"currently_employed"`
	CurrentJobTitle             *string   `json:"current_job_title"`
	CurrentJobDuration          *string   `json:"current_job_duration"`
	CurrentJobDescription       *string   `json:"current_job_description"`
	PublicProfileEnabled        *bool     `json:"public_profile_enabled"`
	UniqueProfileSlug           *string   `json:"unique_profile_slug"`
	ProfileCompletionPercentage int       `json:"profile_completion_percentage"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

// IsPublic reports whether the public page may be served. Unset counts as private.
func (p *CandidateProfile) IsPublic() bool {
	return p != nil && p.PublicProfileEnabled != nil && *p.PublicProfileEnabled
}

// ProfileFields is a partial update: nil pointers leave the column untouched.
// Clear* flags write NULL explicitly.
type ProfileFields struct {
	FirstName             *string
	LastName              *string
	City                  *string
	Department            *string
	ProfilePhotoURL       *string
	CurrentlyEmployed     *bool
	CurrentJobTitle       *string
	CurrentJobDuration    *string
	CurrentJobDescription *string
	ClearCurrentJob       bool
	PublicProfileEnabled  *bool
	UniqueProfileSlug     *string
	CompletionPercentage  *int
}

// IsEmpty reports whether the update would not change any column.
func (f ProfileFields) IsEmpty() bool {
	return f.FirstName == nil && f.LastName == nil && f.City == nil && f.Department == nil &&
		f.ProfilePhotoURL == nil && f.CurrentlyEmployed == nil && f.CurrentJobTitle == nil &&
		f.CurrentJobDuration == nil && f.CurrentJobDescription == nil && !f.ClearCurrentJob &&
		f.PublicProfileEnabled == nil && f.UniqueProfileSlug == nil && f.CompletionPercentage == nil
}

// ProfileSeed carries identity-provider metadata used when the profile is created lazily.
type ProfileSeed struct {
	FirstName string
	LastName  string
}

// PersonalInfoInput is step 1 of the wizard.
type PersonalInfoInput struct {
	FirstName       string `json:"first_name" validate:"omitempty,max=100,valid_name,no_emoji"`
	LastName        string `json:"last_name" validate:"omitempty,max=100,valid_name,no_emoji"`
	City            string `json:"city" validate:"omitempty,max=100,no_emoji"`
	Department      string `json:"department" validate:"omitempty,max=100,no_emoji"`
	ProfilePhotoURL string `json:"profile_photo_url" validate:"omitempty,url,max=2048"`
}

// ProfessionalInfoInput is step 2 of the wizard.
type ProfessionalInfoInput struct {
	CurrentlyEmployed     *bool  `json:"currently_employed" validate:"required"`
	CurrentJobTitle       string `json:"current_job_title" validate:"omitempty,max=150,no_emoji"`
	CurrentJobDuration    string `json:"current_job_duration" validate:"omitempty,max=100"`
	CurrentJobDescription string `json:"current_job_description" validate:"omitempty,max=2000"`
}

// VisibilityInput toggles the public CV page.
type VisibilityInput struct {
	Enabled *bool `json:"public_profile_enabled" validate:"required"`
}

// Dashboard is the owner's view of their profile.
type Dashboard struct {
	Profile                  *CandidateProfile `json:"profile"`
	ExperiencesCount         int               `json:"experiences_count"`
	AcademicCredentialsCount int               `json:"academic_credentials_count"`
	CompletionPercentage     int               `json:"completion_percentage"`
	ViewCount                int               `json:"view_count"`
}

type CandidateUsecase interface {
	GetOrCreateProfile(ctx context.Context, userID string, seed ProfileSeed) (*CandidateProfile, error)
	GetDashboard(ctx context.Context, userID string, seed ProfileSeed) (*Dashboard, error)
	UpdatePersonalInfo(ctx context.Context, userID string, input *PersonalInfoInput) (*CandidateProfile, error)
	UpdateProfessionalInfo(ctx context.Context, userID string, input *ProfessionalInfoInput) (*CandidateProfile, error)
	SetVisibility(ctx context.Context, userID string, enabled bool) (*CandidateProfile, error)
	DeleteAccount(ctx context.Context, userID string) error
}
