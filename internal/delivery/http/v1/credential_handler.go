package v1

import (
	"net/http"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CredentialHandler struct {
	credentialUC domain.CredentialUsecase
}

func NewCredentialHandler(r *gin.RouterGroup, credentialUC domain.CredentialUsecase) {
	handler := &CredentialHandler{credentialUC: credentialUC}

	credentials := r.Group("/candidates/me/credentials")
	{
		credentials.GET("", handler.List)
		credentials.POST("", handler.Create)
		credentials.PUT("/:id", handler.Update)
		credentials.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List academic credentials
// @Description  Degrees, trainings and certifications of the logged-in candidate, newest first
// @Tags         credentials
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.AcademicCredential}
// @Failure      401  {object}  response.Response
// @Router       /candidates/me/credentials [get]
// @Security     BearerAuth
func (h *CredentialHandler) List(c *gin.Context) {
	credentials, err := h.credentialUC.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Academic credentials", credentials)
}

// Create godoc
// @Summary      Add an academic credential
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Param        request  body      domain.CredentialInput  true  "Credential"
// @Success      201      {object}  response.Response{data=domain.AcademicCredential}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /candidates/me/credentials [post]
// @Security     BearerAuth
func (h *CredentialHandler) Create(c *gin.Context) {
	var input domain.CredentialInput
	if !bindJSON(c, &input) {
		return
	}

	credential, err := h.credentialUC.Create(c.Request.Context(), currentUserID(c), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Credential added", credential)
}

// Update godoc
// @Summary      Update an academic credential
// @Tags         credentials
// @Accept       json
// @Produce      json
// @Param        id       path      string                  true  "Credential ID"
// @Param        request  body      domain.CredentialInput  true  "Credential"
// @Success      200      {object}  response.Response{data=domain.AcademicCredential}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /candidates/me/credentials/{id} [put]
// @Security     BearerAuth
func (h *CredentialHandler) Update(c *gin.Context) {
	var input domain.CredentialInput
	if !bindJSON(c, &input) {
		return
	}

	credential, err := h.credentialUC.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Credential updated", credential)
}

// Delete godoc
// @Summary      Delete an academic credential
// @Tags         credentials
// @Produce      json
// @Param        id   path      string  true  "Credential ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/credentials/{id} [delete]
// @Security     BearerAuth
func (h *CredentialHandler) Delete(c *gin.Context) {
	if err := h.credentialUC.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Credential deleted", nil)
}
