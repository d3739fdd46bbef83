package v1

import (
	"net/http"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ExperienceHandler struct {
	experienceUC domain.ExperienceUsecase
}

func NewExperienceHandler(r *gin.RouterGroup, experienceUC domain.ExperienceUsecase) {
	handler := &ExperienceHandler{experienceUC: experienceUC}

	experiences := r.Group("/candidates/me/experiences")
	{
		experiences.GET("", handler.List)
		experiences.POST("", handler.Create)
		experiences.PUT("/:id", handler.Update)
		experiences.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List professional experiences
// @Description  Experiences of the logged-in candidate, newest first
// @Tags         experiences
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ProfessionalExperience}
// @Failure      401  {object}  response.Response
// @Router       /candidates/me/experiences [get]
// @Security     BearerAuth
func (h *ExperienceHandler) List(c *gin.Context) {
	experiences, err := h.experienceUC.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Professional experiences", experiences)
}

// Create godoc
// @Summary      Add a professional experience
// @Tags         experiences
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ExperienceInput  true  "Experience"
// @Success      201      {object}  response.Response{data=domain.ProfessionalExperience}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /candidates/me/experiences [post]
// @Security     BearerAuth
func (h *ExperienceHandler) Create(c *gin.Context) {
	var input domain.ExperienceInput
	if !bindJSON(c, &input) {
		return
	}

	experience, err := h.experienceUC.Create(c.Request.Context(), currentUserID(c), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Experience added", experience)
}

// Update godoc
// @Summary      Update a professional experience
// @Tags         experiences
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Experience ID"
// @Param        request  body      domain.ExperienceInput  true  "Experience"
// @Success      200      {object}  response.Response{data=domain.ProfessionalExperience}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /candidates/me/experiences/{id} [put]
// @Security     BearerAuth
func (h *ExperienceHandler) Update(c *gin.Context) {
	var input domain.ExperienceInput
	if !bindJSON(c, &input) {
		return
	}

	experience, err := h.experienceUC.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience updated", experience)
}

// Delete godoc
// @Summary      Delete a professional experience
// @Tags         experiences
// @Produce      json
// @Param        id   path      string  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/experiences/{id} [delete]
// @Security     BearerAuth
func (h *ExperienceHandler) Delete(c *gin.Context) {
	if err := h.experienceUC.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience deleted", nil)
}
