package usecase_test

import (
	"context"

	"childcare-cv-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetProfileByID(ctx context.Context, id string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockProfileStore) GetProfileBySlug(ctx context.Context, slug string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockProfileStore) InsertProfile(ctx context.Context, profile *domain.CandidateProfile) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockProfileStore) UpdateProfileFields(ctx context.Context, id string, fields domain.ProfileFields) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *MockProfileStore) DeleteProfile(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProfileStore) CountExperiences(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileStore) ListExperiences(ctx context.Context, userID string) ([]domain.ProfessionalExperience, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProfessionalExperience), args.Error(1)
}

func (m *MockProfileStore) GetExperience(ctx context.Context, userID, id string) (*domain.ProfessionalExperience, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfessionalExperience), args.Error(1)
}

func (m *MockProfileStore) InsertExperience(ctx context.Context, exp *domain.ProfessionalExperience) error {
	return m.Called(ctx, exp).Error(0)
}

func (m *MockProfileStore) UpdateExperience(ctx context.Context, exp *domain.ProfessionalExperience) error {
	return m.Called(ctx, exp).Error(0)
}

func (m *MockProfileStore) DeleteExperience(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProfileStore) CountCredentials(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileStore) ListCredentials(ctx context.Context, userID string) ([]domain.AcademicCredential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AcademicCredential), args.Error(1)
}

func (m *MockProfileStore) GetCredential(ctx context.Context, userID, id string) (*domain.AcademicCredential, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcademicCredential), args.Error(1)
}

func (m *MockProfileStore) InsertCredential(ctx context.Context, cred *domain.AcademicCredential) error {
	return m.Called(ctx, cred).Error(0)
}

func (m *MockProfileStore) UpdateCredential(ctx context.Context, cred *domain.AcademicCredential) error {
	return m.Called(ctx, cred).Error(0)
}

func (m *MockProfileStore) DeleteCredential(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockProfileStore) InsertView(ctx context.Context, profileID string) error {
	return m.Called(ctx, profileID).Error(0)
}

func (m *MockProfileStore) CountViews(ctx context.Context, profileID string) (int, error) {
	args := m.Called(ctx, profileID)
	return args.Int(0), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, userID)
}
