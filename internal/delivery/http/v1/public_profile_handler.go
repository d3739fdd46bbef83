package v1

import (
	"net/http"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"
	"childcare-cv-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type PublicProfileHandler struct {
	publicProfileUC domain.PublicProfileUsecase
}

// PublicProfileResponse is the anonymous projection of a public CV page.
// Completion percentage, visibility flag and timestamps are not exposed.
type PublicProfileResponse struct {
	Slug                  string                     `json:"slug"`
	FirstName             *string                    `json:"first_name"`
	LastName              *string                    `json:"last_name"`
	City                  *string                    `json:"city"`
	Department            *string                    `json:"department"`
	ProfilePhotoURL       *string                    `json:"profile_photo_url"`
	CurrentlyEmployed     *bool                      `json:"currently_employed"`
	CurrentJobTitle       *string                    `json:"current_job_title"`
	CurrentJobDuration    *string                    `json:"current_job_duration"`
	CurrentJobDescription *string                    `json:"current_job_description"`
	Experiences           []PublicExperienceResponse `json:"experiences"`
	AcademicCredentials   []PublicCredentialResponse `json:"academic_credentials"`
	ViewCount             int                        `json:"view_count"`
}

type PublicExperienceResponse struct {
	ID             string  `json:"id"`
	JobTitle       string  `json:"job_title"`
	CompanyName    *string `json:"company_name"`
	JobDuration    *string `json:"job_duration"`
	JobDescription *string `json:"job_description"`
}

type PublicCredentialResponse struct {
	ID               string                `json:"id"`
	CredentialType   domain.CredentialType `json:"credential_type"`
	Title            string                `json:"title"`
	Institution      *string               `json:"institution"`
	CompletionDate   *string               `json:"completion_date"`
	Description      *string               `json:"description"`
	ProofDocumentURL *string               `json:"proof_document_url"`
}

func NewPublicProfileHandler(r *gin.RouterGroup, publicProfileUC domain.PublicProfileUsecase, middlewares ...gin.HandlerFunc) {
	handler := &PublicProfileHandler{publicProfileUC: publicProfileUC}

	public := r.Group("/public")
	public.Use(middlewares...)
	{
		public.GET("/profiles/:slug", handler.GetBySlug)
	}
}

// GetBySlug godoc
// @Summary      Get a public CV page
// @Description  Anonymous read of a published candidate profile. Each successful read is counted as one view.
// @Tags         public
// @Produce      json
// @Param        slug  path      string  true  "Public profile slug"
// @Success      200   {object}  response.Response{data=PublicProfileResponse}
// @Failure      404   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /public/profiles/{slug} [get]
func (h *PublicProfileHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	// Empty or oversized slugs get the same answer as unknown or private ones.
	if !validation.IsSlug(slug) {
		c.Error(apperror.New(http.StatusNotFound, "Profile not available", domain.ErrProfileNotFound))
		return
	}

	result, err := h.publicProfileUC.Resolve(c.Request.Context(), slug)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Public profile", toPublicProfileResponse(slug, result))
}

func toPublicProfileResponse(slug string, result *domain.PublicProfile) PublicProfileResponse {
	p := result.Profile
	resp := PublicProfileResponse{
		Slug:                  slug,
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		City:                  p.City,
		Department:            p.Department,
		ProfilePhotoURL:       p.ProfilePhotoURL,
		CurrentlyEmployed:     p.CurrentlyEmployed,
		CurrentJobTitle:       p.CurrentJobTitle,
		CurrentJobDuration:    p.CurrentJobDuration,
		CurrentJobDescription: p.CurrentJobDescription,
		Experiences:           make([]PublicExperienceResponse, 0, len(result.Experiences)),
		AcademicCredentials:   make([]PublicCredentialResponse, 0, len(result.Credentials)),
		ViewCount:             result.ViewCount,
	}

	for _, e := range result.Experiences {
		resp.Experiences = append(resp.Experiences, PublicExperienceResponse{
			ID:             e.ID,
			JobTitle:       e.JobTitle,
			CompanyName:    e.CompanyName,
			JobDuration:    e.JobDuration,
			JobDescription: e.JobDescription,
		})
	}
	for _, cr := range result.Credentials {
		resp.AcademicCredentials = append(resp.AcademicCredentials, PublicCredentialResponse{
			ID:               cr.ID,
			CredentialType:   cr.CredentialType,
			Title:            cr.Title,
			Institution:      cr.Institution,
			CompletionDate:   cr.CompletionDate,
			Description:      cr.Description,
			ProofDocumentURL: cr.ProofDocumentURL,
		})
	}

	return resp
}
