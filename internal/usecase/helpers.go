package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"
	"childcare-cv-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// authorize checks that the authenticated caller owns userID (IDOR prevention).
func authorize(ctx context.Context, userID string) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID {
		return apperror.Forbidden("You can only access your own profile")
	}
	return nil
}

func validateInput(v *validator.Validate, input any) error {
	if err := v.Struct(input); err != nil {
		return apperror.New(http.StatusBadRequest, strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}
	return nil
}

// storeFailure marks a read the operation cannot proceed without.
func storeFailure(err error) error {
	return apperror.Internal(fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
