package v1

import (
	"net/http"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("/me", handler.GetProfile)
		candidates.GET("/me/dashboard", handler.GetDashboard)
		candidates.PUT("/me/personal", handler.UpdatePersonalInfo)
		candidates.PUT("/me/professional", handler.UpdateProfessionalInfo)
		candidates.PUT("/me/visibility", handler.SetVisibility)
		candidates.DELETE("/me", handler.DeleteAccount)
	}
}

// GetProfile godoc
// @Summary      Get candidate profile
// @Description  Get the profile of the currently logged-in candidate, creating it on first access
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      401  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	profile, err := h.candidateUC.GetOrCreateProfile(c.Request.Context(), currentUserID(c), profileSeed(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

// GetDashboard godoc
// @Summary      Get candidate dashboard
// @Description  Profile with experience and credential counts, completion percentage and public page views
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Dashboard}
// @Failure      401  {object}  response.Response
// @Router       /candidates/me/dashboard [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.candidateUC.GetDashboard(c.Request.Context(), currentUserID(c), profileSeed(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate dashboard", dashboard)
}

// UpdatePersonalInfo godoc
// @Summary      Update personal information
// @Description  Wizard step 1: names, city, department and photo URL
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        request  body      domain.PersonalInfoInput  true  "Personal information"
// @Success      200      {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /candidates/me/personal [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdatePersonalInfo(c *gin.Context) {
	var input domain.PersonalInfoInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.candidateUC.UpdatePersonalInfo(c.Request.Context(), currentUserID(c), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Personal information updated", profile)
}

// UpdateProfessionalInfo godoc
// @Summary      Update professional information
// @Description  Wizard step 2: current employment. Job fields are cleared when not employed.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ProfessionalInfoInput  true  "Professional information"
// @Success      200      {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /candidates/me/professional [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpdateProfessionalInfo(c *gin.Context) {
	var input domain.ProfessionalInfoInput
	if !bindJSON(c, &input) {
		return
	}

	profile, err := h.candidateUC.UpdateProfessionalInfo(c.Request.Context(), currentUserID(c), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Professional information updated", profile)
}

// SetVisibility godoc
// @Summary      Publish or hide the public CV page
// @Description  Enabling generates the public slug on first use; it is kept on later toggles
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        request  body      domain.VisibilityInput  true  "Visibility"
// @Success      200      {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /candidates/me/visibility [put]
// @Security     BearerAuth
func (h *CandidateHandler) SetVisibility(c *gin.Context) {
	var input domain.VisibilityInput
	if !bindJSON(c, &input) {
		return
	}
	if input.Enabled == nil {
		response.Error(c, http.StatusBadRequest, "public_profile_enabled is required", nil)
		return
	}

	profile, err := h.candidateUC.SetVisibility(c.Request.Context(), currentUserID(c), *input.Enabled)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile visibility updated", profile)
}

// DeleteAccount godoc
// @Summary      Delete candidate profile
// @Description  Removes the profile with its experiences, credentials and view history
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [delete]
// @Security     BearerAuth
func (h *CandidateHandler) DeleteAccount(c *gin.Context) {
	if err := h.candidateUC.DeleteAccount(c.Request.Context(), currentUserID(c)); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile deleted", nil)
}
