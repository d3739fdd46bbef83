package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to the French labels shown in the wizard.
var FieldLabels = map[string]string{
	// Personal information
	"FirstName":       "Prénom",
	"LastName":        "Nom",
	"City":            "Ville",
	"Department":      "Département",
	"ProfilePhotoURL": "Photo de profil",

	// Professional information
	"CurrentlyEmployed":     "Situation actuelle",
	"CurrentJobTitle":       "Poste actuel",
	"CurrentJobDuration":    "Ancienneté",
	"CurrentJobDescription": "Description du poste",
	"Enabled":               "Visibilité du profil",

	// Experiences
	"JobTitle":       "Intitulé du poste",
	"CompanyName":    "Structure",
	"JobDuration":    "Durée",
	"JobDescription": "Missions",

	// Academic credentials
	"CredentialType": "Type de diplôme",
	"Title":          "Intitulé",
	"Institution":    "Établissement",
	"CompletionDate": "Date d'obtention",
	"Description":    "Description",
}

var credentialTypeLabels = map[string]string{
	"degree":        "Diplôme",
	"training":      "Formation",
	"certification": "Certification",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s : champ obligatoire", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s : %s caractères minimum", label, param)
		}
		return fmt.Sprintf("%s : minimum %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s : %s caractères maximum", label, param)
		}
		return fmt.Sprintf("%s : maximum %s", label, param)

	case "url":
		return fmt.Sprintf("%s : URL invalide", label)

	case "valid_name":
		return fmt.Sprintf("%s : lettres, espaces et ponctuation simple uniquement (. ' - /)", label)

	case "no_emoji":
		return fmt.Sprintf("%s : les emojis et symboles ne sont pas autorisés", label)

	case "credential_type":
		return fmt.Sprintf("%s : doit être l'une des valeurs suivantes : %s", label, credentialTypeOptions())

	case "iso_date":
		return fmt.Sprintf("%s : date invalide (format AAAA-MM-JJ)", label)

	case "not_future":
		return fmt.Sprintf("%s : ne peut pas être dans le futur", label)

	default:
		return fmt.Sprintf("%s : valeur invalide (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}

func credentialTypeOptions() string {
	return strings.Join([]string{
		credentialTypeLabels["degree"],
		credentialTypeLabels["training"],
		credentialTypeLabels["certification"],
	}, ", ")
}
