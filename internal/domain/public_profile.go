package domain

import "context"

// PublicProfile is the aggregate served on a candidate's public CV page.
type PublicProfile struct {
	Profile     *CandidateProfile        `json:"profile"`
	Experiences []ProfessionalExperience `json:"experiences"`
	Credentials []AcademicCredential     `json:"academic_credentials"`
	ViewCount   int                      `json:"view_count"`
}

type PublicProfileUsecase interface {
	Resolve(ctx context.Context, slug string) (*PublicProfile, error)
}
