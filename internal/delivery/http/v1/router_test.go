package v1_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"childcare-cv-backend/config"
	v1 "childcare-cv-backend/internal/delivery/http/v1"
	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/internal/usecase"
	"childcare-cv-backend/pkg/apperror"
	"childcare-cv-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	candidate  *MockCandidateUsecase
	experience *MockExperienceUsecase
	credential *MockCredentialUsecase
	public     *MockPublicProfileUsecase
	upload     *MockUploadUsecase
	health     *MockHealthUsecase
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                   "test",
		FrontendURL:              "https://cv.example.fr",
		RateLimitWindowSeconds:   60,
		RateLimitPublicThreshold: 100,
		UploadMaxPerMinute:       100,
		UploadMaxBytes:           1 << 20,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, testDeps) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deps := testDeps{
		candidate:  new(MockCandidateUsecase),
		experience: new(MockExperienceUsecase),
		credential: new(MockCredentialUsecase),
		public:     new(MockPublicProfileUsecase),
		upload:     new(MockUploadUsecase),
		health:     new(MockHealthUsecase),
	}
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC:     deps.candidate,
		ExperienceUC:    deps.experience,
		CredentialUC:    deps.credential,
		PublicProfileUC: deps.public,
		UploadUC:        deps.upload,
		HealthUC:        deps.health,
		Verifier:        fakeVerifier{},
		Config:          cfg,
	})
	return router, deps
}

func doRequest(router http.Handler, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeaders() map[string]string {
	return map[string]string{"Authorization": "Bearer " + validToken}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	t.Run("Should report 200 when required services are up", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.health.On("Check", mock.Anything).Return(map[string]string{"database": "ok", "redis": "degraded"}, true)

		w := doRequest(router, http.MethodGet, "/v1/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "degraded", decode(t, w)["data"].(map[string]any)["redis"])
	})

	t.Run("Should report 503 when the database is down", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.health.On("Check", mock.Anything).Return(map[string]string{"database": "down"}, false)

		w := doRequest(router, http.MethodGet, "/v1/health", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAuthentication(t *testing.T) {
	router, deps := newTestRouter(t, testConfig())

	w := doRequest(router, http.MethodGet, "/v1/candidates/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/v1/candidates/me", nil, map[string]string{"Authorization": "Bearer forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decode(t, w)["message"])

	deps.candidate.AssertNotCalled(t, "GetOrCreateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetProfile(t *testing.T) {
	router, deps := newTestRouter(t, testConfig())

	seed := domain.ProfileSeed{FirstName: "Camille", LastName: "Martin"}
	first := "Camille"
	deps.candidate.On("GetOrCreateProfile", forUser("user1"), "user1", seed).
		Return(&domain.CandidateProfile{ID: "user1", FirstName: &first}, nil).Once()

	w := doRequest(router, http.MethodGet, "/v1/candidates/me", nil, authHeaders())
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Camille", body["data"].(map[string]any)["first_name"])
	assert.NotEmpty(t, body["request_id"])
	deps.candidate.AssertExpectations(t)
}

func TestCandidateErrors(t *testing.T) {
	t.Run("Should hide internal error details", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.candidate.On("GetDashboard", mock.Anything, "user1", mock.Anything).
			Return(nil, apperror.Internal(errors.New("dial tcp 10.0.0.3:5432: connection refused")))

		w := doRequest(router, http.MethodGet, "/v1/candidates/me/dashboard", nil, authHeaders())
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.3")
	})

	t.Run("Should pass validation messages through", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.candidate.On("UpdatePersonalInfo", mock.Anything, "user1", mock.Anything).
			Return(nil, apperror.BadRequest("Prénom est obligatoire"))

		w := doRequest(router, http.MethodPut, "/v1/candidates/me/personal", strings.NewReader(`{"last_name":"Martin"}`), authHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Prénom est obligatoire", decode(t, w)["message"])
	})

	t.Run("Should reject a malformed body", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())

		w := doRequest(router, http.MethodPut, "/v1/candidates/me/professional", strings.NewReader(`{"currently_employed":`), authHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		deps.candidate.AssertNotCalled(t, "UpdateProfessionalInfo", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should require the visibility flag", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())

		w := doRequest(router, http.MethodPut, "/v1/candidates/me/visibility", strings.NewReader(`{}`), authHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		deps.candidate.AssertNotCalled(t, "SetVisibility", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should forward the visibility flag", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.candidate.On("SetVisibility", mock.Anything, "user1", true).
			Return(&domain.CandidateProfile{ID: "user1"}, nil).Once()

		w := doRequest(router, http.MethodPut, "/v1/candidates/me/visibility", strings.NewReader(`{"public_profile_enabled":true}`), authHeaders())
		assert.Equal(t, http.StatusOK, w.Code)
		deps.candidate.AssertExpectations(t)
	})
}

func TestExperienceRoutes(t *testing.T) {
	router, deps := newTestRouter(t, testConfig())

	deps.experience.On("Create", forUser("user1"), "user1", &domain.ExperienceInput{JobTitle: "Animatrice"}).
		Return(&domain.ProfessionalExperience{ID: "e1", UserID: "user1", JobTitle: "Animatrice"}, nil).Once()
	deps.experience.On("Delete", mock.Anything, "user1", "someone-elses").
		Return(apperror.NotFound("Experience not found")).Once()

	w := doRequest(router, http.MethodPost, "/v1/candidates/me/experiences", strings.NewReader(`{"job_title":"Animatrice"}`), authHeaders())
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodDelete, "/v1/candidates/me/experiences/someone-elses", nil, authHeaders())
	assert.Equal(t, http.StatusNotFound, w.Code)

	deps.experience.AssertExpectations(t)
}

func TestCredentialRoutes(t *testing.T) {
	t.Run("Should list and create credentials for the caller", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.credential.On("List", forUser("user1"), "user1").
			Return([]domain.AcademicCredential{{ID: "c1", UserID: "user1", CredentialType: domain.CredentialDegree, Title: "CAP AEPE"}}, nil).Once()
		deps.credential.On("Create", forUser("user1"), "user1", &domain.CredentialInput{CredentialType: domain.CredentialTraining, Title: "PSC1"}).
			Return(&domain.AcademicCredential{ID: "c2", UserID: "user1", CredentialType: domain.CredentialTraining, Title: "PSC1"}, nil).Once()

		w := doRequest(router, http.MethodGet, "/v1/candidates/me/credentials", nil, authHeaders())
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["data"], 1)

		w = doRequest(router, http.MethodPost, "/v1/candidates/me/credentials", strings.NewReader(`{"credential_type":"training","title":"PSC1"}`), authHeaders())
		assert.Equal(t, http.StatusCreated, w.Code)
		deps.credential.AssertExpectations(t)
	})

	t.Run("Should reject an unknown credential type", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		// Validation runs before any store access, so no store is needed.
		router := v1.NewRouter(v1.RouterDeps{
			CredentialUC: usecase.NewCredentialUsecase(nil, usecase.NewCompletionScorer(nil), validation.New()),
			Verifier:     fakeVerifier{},
			Config:       testConfig(),
		})

		w := doRequest(router, http.MethodPost, "/v1/candidates/me/credentials", strings.NewReader(`{"credential_type":"diploma","title":"CAP AEPE"}`), authHeaders())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["message"], "doit être l'une des valeurs suivantes")
	})

	t.Run("Should answer 404 for another user's credential", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.credential.On("Update", forUser("user1"), "user1", "c-other", mock.Anything).
			Return(nil, apperror.NotFound("Academic credential not found")).Once()
		deps.credential.On("Delete", forUser("user1"), "user1", "c-other").
			Return(apperror.NotFound("Academic credential not found")).Once()

		w := doRequest(router, http.MethodPut, "/v1/candidates/me/credentials/c-other", strings.NewReader(`{"credential_type":"degree","title":"CAP AEPE"}`), authHeaders())
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doRequest(router, http.MethodDelete, "/v1/candidates/me/credentials/c-other", nil, authHeaders())
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Academic credential not found", decode(t, w)["message"])
		deps.credential.AssertExpectations(t)
	})
}

func TestPublicProfile(t *testing.T) {
	notAvailable := apperror.New(http.StatusNotFound, "Profile not available", domain.ErrProfileNotFound)
	headers := map[string]string{"X-Request-ID": "req-fixed"}

	t.Run("Should answer identically for missing, private and oversized slugs", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		oversized := strings.Repeat("a", 161)
		deps.public.On("Resolve", mock.Anything, "nobody-00000000").Return(nil, notAvailable)
		deps.public.On("Resolve", mock.Anything, "camille-martin-0a1b2c3d").Return(nil, notAvailable)

		missing := doRequest(router, http.MethodGet, "/v1/public/profiles/nobody-00000000", nil, headers)
		private := doRequest(router, http.MethodGet, "/v1/public/profiles/camille-martin-0a1b2c3d", nil, headers)
		tooLong := doRequest(router, http.MethodGet, "/v1/public/profiles/"+oversized, nil, headers)

		assert.Equal(t, http.StatusNotFound, missing.Code)
		assert.Equal(t, missing.Code, private.Code)
		assert.Equal(t, missing.Code, tooLong.Code)
		assert.Equal(t, missing.Body.String(), private.Body.String())
		assert.Equal(t, missing.Body.String(), tooLong.Body.String())
		deps.public.AssertNotCalled(t, "Resolve", mock.Anything, oversized)
	})

	t.Run("Should match stored slugs exactly and case-sensitively", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		enabled := true
		for _, slug := range []string{"Camille-Martin", "camille_martin"} {
			deps.public.On("Resolve", mock.Anything, slug).Return(&domain.PublicProfile{
				Profile:     &domain.CandidateProfile{ID: "user1", PublicProfileEnabled: &enabled},
				Experiences: []domain.ProfessionalExperience{},
				Credentials: []domain.AcademicCredential{},
			}, nil).Once()
		}
		deps.public.On("Resolve", mock.Anything, "camille-martin").Return(nil, notAvailable).Once()
		deps.public.On("Resolve", mock.Anything, "nobody-00000000").Return(nil, notAvailable).Once()

		for _, slug := range []string{"Camille-Martin", "camille_martin"} {
			w := doRequest(router, http.MethodGet, "/v1/public/profiles/"+slug, nil, headers)
			require.Equal(t, http.StatusOK, w.Code, slug)
			assert.Equal(t, slug, decode(t, w)["data"].(map[string]any)["slug"])
		}

		variant := doRequest(router, http.MethodGet, "/v1/public/profiles/camille-martin", nil, headers)
		unknown := doRequest(router, http.MethodGet, "/v1/public/profiles/nobody-00000000", nil, headers)
		assert.Equal(t, http.StatusNotFound, variant.Code)
		assert.Equal(t, unknown.Body.String(), variant.Body.String())
		deps.public.AssertExpectations(t)
	})

	t.Run("Should serve the public projection without being authenticated", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		first, city := "Camille", "Lyon"
		enabled := true
		completed := "2019-06-30"
		deps.public.On("Resolve", mock.Anything, "camille-martin-0a1b2c3d").Return(&domain.PublicProfile{
			Profile: &domain.CandidateProfile{
				ID: "user1", FirstName: &first, City: &city,
				PublicProfileEnabled: &enabled, ProfileCompletionPercentage: 82,
				CreatedAt: time.Now(),
			},
			Experiences: []domain.ProfessionalExperience{{ID: "e1", UserID: "user1", JobTitle: "Animatrice"}},
			Credentials: []domain.AcademicCredential{{ID: "c1", UserID: "user1", CredentialType: domain.CredentialDegree, Title: "CAP AEPE", CompletionDate: &completed}},
			ViewCount:   7,
		}, nil).Once()

		w := doRequest(router, http.MethodGet, "/v1/public/profiles/camille-martin-0a1b2c3d", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "camille-martin-0a1b2c3d", data["slug"])
		assert.Equal(t, "Camille", data["first_name"])
		assert.EqualValues(t, 7, data["view_count"])
		assert.NotContains(t, data, "profile_completion_percentage")
		assert.NotContains(t, data, "created_at")
		assert.NotContains(t, w.Body.String(), "user_id")
		assert.Len(t, data["experiences"], 1)
		assert.Equal(t, "2019-06-30", data["academic_credentials"].([]any)[0].(map[string]any)["completion_date"])
	})
}

func TestPublicProfileRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPublicThreshold = 2
	router, deps := newTestRouter(t, cfg)
	deps.public.On("Resolve", mock.Anything, mock.Anything).
		Return(nil, apperror.New(http.StatusNotFound, "Profile not available", domain.ErrProfileNotFound))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/public/profiles/nobody-00000000", nil)
		req.RemoteAddr = "198.51.100.23:4711"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNotFound, send().Code)
	assert.Equal(t, http.StatusNotFound, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploads(t *testing.T) {
	pdf := []byte("%PDF-1.4 proof")

	t.Run("Should hand the file to the upload usecase", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())
		deps.upload.On("UploadProofDocument", forUser("user1"), "user1", "c1", "diplome.pdf", pdf).
			Return(&domain.UploadResult{URL: "https://cdn.example.fr/user1/credentials/c1/1_diplome.pdf", ContentType: "application/pdf", Size: len(pdf)}, nil).Once()

		body, contentType := multipartBody(t, "file", "diplome.pdf", pdf)
		headers := authHeaders()
		headers["Content-Type"] = contentType

		w := doRequest(router, http.MethodPost, "/v1/candidates/me/credentials/c1/proof", body, headers)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", decode(t, w)["data"].(map[string]any)["content_type"])
		deps.upload.AssertExpectations(t)
	})

	t.Run("Should reject a request without a file", func(t *testing.T) {
		router, deps := newTestRouter(t, testConfig())

		body, contentType := multipartBody(t, "", "", nil)
		headers := authHeaders()
		headers["Content-Type"] = contentType

		w := doRequest(router, http.MethodPost, "/v1/candidates/me/photo", body, headers)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		deps.upload.AssertNotCalled(t, "UploadProfilePhoto", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should truncate oversized files one byte past the limit", func(t *testing.T) {
		cfg := testConfig()
		cfg.UploadMaxBytes = 16
		router, deps := newTestRouter(t, cfg)
		deps.upload.On("UploadProfilePhoto", mock.Anything, "user1", "big.png", mock.MatchedBy(func(data []byte) bool {
			return len(data) == 17
		})).Return(nil, apperror.TooLarge("File exceeds the limit")).Once()

		body, contentType := multipartBody(t, "file", "big.png", bytes.Repeat([]byte{0x89}, 64))
		headers := authHeaders()
		headers["Content-Type"] = contentType

		w := doRequest(router, http.MethodPost, "/v1/candidates/me/photo", body, headers)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		deps.upload.AssertExpectations(t)
	})
}

func TestCORS(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	w := doRequest(router, http.MethodOptions, "/v1/candidates/me", nil, map[string]string{"Origin": "https://cv.example.fr"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://cv.example.fr", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(router, http.MethodOptions, "/v1/candidates/me", nil, map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
