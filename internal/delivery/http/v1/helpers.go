package v1

import (
	"net/http"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

// profileSeed carries the names from the token for lazy profile creation.
func profileSeed(c *gin.Context) domain.ProfileSeed {
	return domain.ProfileSeed{
		FirstName: c.GetString(string(domain.KeyUserFirstName)),
		LastName:  c.GetString(string(domain.KeyUserLastName)),
	}
}

// bindJSON binds the body and records a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return false
	}
	return true
}
