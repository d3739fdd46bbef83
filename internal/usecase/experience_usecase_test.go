package usecase_test

import (
	"net/http"
	"testing"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/internal/usecase"
	"childcare-cv-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExperienceUsecase(t *testing.T) {
	newUsecase := func(store *MockProfileStore) domain.ExperienceUsecase {
		return usecase.NewExperienceUsecase(store, usecase.NewCompletionScorer(store), validation.New())
	}

	t.Run("Should create an experience owned by the caller and rescore", func(t *testing.T) {
		store := new(MockProfileStore)
		store.On("GetProfileByID", mock.Anything, "user1").Return(personalComplete(), nil)
		store.On("InsertExperience", mock.Anything, mock.MatchedBy(func(e *domain.ProfessionalExperience) bool {
			return e.UserID == "user1" && e.ID != "" && e.JobTitle == "Auxiliaire de crèche" &&
				e.CompanyName != nil && *e.CompanyName == "Crèche Les Lutins" && e.JobDuration == nil
		})).Return(nil).Once()
		expectRescore(store, "user1", 1, 0)

		exp, err := newUsecase(store).Create(userCtx("user1"), "user1", &domain.ExperienceInput{
			JobTitle:    "Auxiliaire de crèche",
			CompanyName: "Crèche Les Lutins",
		})
		require.NoError(t, err)
		assert.Equal(t, "user1", exp.UserID)
		store.AssertExpectations(t)
	})

	t.Run("Should require a job title", func(t *testing.T) {
		store := new(MockProfileStore)
		_, err := newUsecase(store).Create(userCtx("user1"), "user1", &domain.ExperienceInput{})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Should hide experiences of other users", func(t *testing.T) {
		store := new(MockProfileStore)
		store.On("GetExperience", mock.Anything, "user1", "exp-of-user2").Return(nil, domain.ErrNotFound)
		store.On("DeleteExperience", mock.Anything, "user1", "exp-of-user2").Return(domain.ErrNotFound)

		uc := newUsecase(store)
		_, err := uc.Update(userCtx("user1"), "user1", "exp-of-user2", &domain.ExperienceInput{JobTitle: "Directrice"})
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))

		err = uc.Delete(userCtx("user1"), "user1", "exp-of-user2")
		assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
		store.AssertNotCalled(t, "UpdateExperience", mock.Anything, mock.Anything)
	})

	t.Run("Should rescore after deleting", func(t *testing.T) {
		store := new(MockProfileStore)
		store.On("DeleteExperience", mock.Anything, "user1", "e1").Return(nil).Once()
		store.On("GetProfileByID", mock.Anything, "user1").Return(personalComplete(), nil)
		expectRescore(store, "user1", 0, 0)

		require.NoError(t, newUsecase(store).Delete(userCtx("user1"), "user1", "e1"))
		store.AssertCalled(t, "UpdateProfileFields", mock.Anything, "user1", mock.Anything)
	})
}

func TestCredentialUsecase(t *testing.T) {
	newUsecase := func(store *MockProfileStore) domain.CredentialUsecase {
		return usecase.NewCredentialUsecase(store, usecase.NewCompletionScorer(store), validation.New())
	}

	t.Run("Should reject unknown credential types", func(t *testing.T) {
		store := new(MockProfileStore)
		_, err := newUsecase(store).Create(userCtx("user1"), "user1", &domain.CredentialInput{
			CredentialType: "diploma",
			Title:          "CAP AEPE",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Should reject malformed completion dates", func(t *testing.T) {
		store := new(MockProfileStore)
		_, err := newUsecase(store).Create(userCtx("user1"), "user1", &domain.CredentialInput{
			CredentialType: domain.CredentialDegree,
			Title:          "CAP AEPE",
			CompletionDate: "juin 2019",
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
	})

	t.Run("Should create a credential and rescore", func(t *testing.T) {
		store := new(MockProfileStore)
		store.On("GetProfileByID", mock.Anything, "user1").Return(personalComplete(), nil)
		store.On("InsertCredential", mock.Anything, mock.MatchedBy(func(c *domain.AcademicCredential) bool {
			return c.UserID == "user1" && c.CredentialType == domain.CredentialDegree &&
				c.CompletionDate != nil && *c.CompletionDate == "2019-06-30"
		})).Return(nil).Once()
		expectRescore(store, "user1", 0, 1)

		cred, err := newUsecase(store).Create(userCtx("user1"), "user1", &domain.CredentialInput{
			CredentialType: domain.CredentialDegree,
			Title:          "CAP AEPE",
			CompletionDate: "2019-06-30",
		})
		require.NoError(t, err)
		assert.Nil(t, cred.ProofDocumentURL)
		store.AssertExpectations(t)
	})

	t.Run("Should keep the proof document on update", func(t *testing.T) {
		store := new(MockProfileStore)
		existing := &domain.AcademicCredential{
			ID: "c1", UserID: "user1", CredentialType: domain.CredentialTraining, Title: "PSC1",
			ProofDocumentURL: strPtr("https://cdn.example.fr/user1/credentials/c1/1_psc1.pdf"),
		}
		store.On("GetCredential", mock.Anything, "user1", "c1").Return(existing, nil)
		store.On("UpdateCredential", mock.Anything, mock.MatchedBy(func(c *domain.AcademicCredential) bool {
			return c.Title == "PSC1 (recyclage)" && c.ProofDocumentURL != nil
		})).Return(nil).Once()

		cred, err := newUsecase(store).Update(userCtx("user1"), "user1", "c1", &domain.CredentialInput{
			CredentialType: domain.CredentialTraining,
			Title:          "PSC1 (recyclage)",
		})
		require.NoError(t, err)
		assert.Equal(t, "PSC1 (recyclage)", cred.Title)
		store.AssertExpectations(t)
	})
}
