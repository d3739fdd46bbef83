package domain

import (
	"context"
	"time"
)

type ProfessionalExperience struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	JobTitle       string    `json:"job_title"`
	CompanyName    *string   `json:"company_name"`
	JobDuration    *string   `json:"job_duration"`
	JobDescription *string   `json:"job_description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ExperienceInput struct {
	JobTitle       string `json:"job_title" validate:"required,min=2,max=150,no_emoji"`
	CompanyName    string `json:"company_name" validate:"omitempty,max=150"`
	JobDuration    string `json:"job_duration" validate:"omitempty,max=100"`
	JobDescription string `json:"job_description" validate:"omitempty,max=2000"`
}

type ExperienceUsecase interface {
	List(ctx context.Context, userID string) ([]ProfessionalExperience, error)
	Create(ctx context.Context, userID string, input *ExperienceInput) (*ProfessionalExperience, error)
	Update(ctx context.Context, userID, id string, input *ExperienceInput) (*ProfessionalExperience, error)
	Delete(ctx context.Context, userID, id string) error
}
