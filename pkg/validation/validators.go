package validation

import (
	"regexp"
	"time"
	"unicode"

	"childcare-cv-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const isoDateLayout = "2006-01-02"

var (
	// Letters, spaces and the punctuation found in French names: . ' - /
	nameRegex = regexp.MustCompile(`^[\p{L} .'/-]+$`)
)

// New returns a validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("credential_type", ValidCredentialType)
	_ = v.RegisterValidation("iso_date", ISODate)
	_ = v.RegisterValidation("not_future", NotFuture)
}

// ValidName rejects digits and most special symbols.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

func ValidCredentialType(fl validator.FieldLevel) bool {
	return domain.CredentialType(fl.Field().String()).IsValid()
}

// ISODate accepts calendar dates written as YYYY-MM-DD.
func ISODate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := time.Parse(isoDateLayout, val)
	return err == nil
}

// NotFuture rejects YYYY-MM-DD dates after today. Unparseable values are left to iso_date.
func NotFuture(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	t, err := time.Parse(isoDateLayout, val)
	if err != nil {
		return true
	}
	return !t.After(time.Now())
}

// MaxSlugLength bounds public slug lookups.
const MaxSlugLength = 160

// IsSlug reports whether s can be looked up as a public profile slug. Slugs are
// opaque and matched exactly by the store, so only emptiness and length are checked.
func IsSlug(s string) bool {
	return s != "" && len(s) <= MaxSlugLength
}
