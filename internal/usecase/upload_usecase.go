package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"
	"childcare-cv-backend/pkg/logger"
	"childcare-cv-backend/pkg/storage"

	"go.uber.org/zap"
)

const jpegMIME = "image/jpeg"

type uploadUsecase struct {
	store    domain.ProfileStore
	objects  domain.ObjectStorage
	scanner  storage.Scanner
	scorer   *CompletionScorer
	maxBytes int
}

// NewUploadUsecase wires the upload flow. A nil scanner skips malware scanning.
func NewUploadUsecase(store domain.ProfileStore, objects domain.ObjectStorage, scanner storage.Scanner, scorer *CompletionScorer, maxBytes int) domain.UploadUsecase {
	if scanner == nil {
		scanner = storage.NoOpScanner{}
	}
	return &uploadUsecase{
		store:    store,
		objects:  objects,
		scanner:  scanner,
		scorer:   scorer,
		maxBytes: maxBytes,
	}
}

func (u *uploadUsecase) UploadProfilePhoto(ctx context.Context, userID, filename string, data []byte) (*domain.UploadResult, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := u.store.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}

	body, contentType, err := u.prepare(ctx, storage.KindPhoto, filename, data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/photo/%d_%s.jpg", userID, time.Now().UnixNano(), storage.SanitizeFilename(filename))
	url, err := u.put(ctx, key, contentType, body)
	if err != nil {
		return nil, err
	}

	if err := u.store.UpdateProfileFields(ctx, userID, domain.ProfileFields{ProfilePhotoURL: &url}); err != nil {
		return nil, storeFailure(err)
	}
	u.scorer.refreshQuietly(ctx, userID)

	return &domain.UploadResult{URL: url, ContentType: contentType, Size: len(body)}, nil
}

func (u *uploadUsecase) UploadProofDocument(ctx context.Context, userID, credentialID, filename string, data []byte) (*domain.UploadResult, error) {
	if err := authorize(ctx, userID); err != nil {
		return nil, err
	}

	cred, err := u.store.GetCredential(ctx, userID, credentialID)
	if err != nil {
		return nil, credentialError(err)
	}

	body, contentType, err := u.prepare(ctx, storage.KindProofDocument, filename, data)
	if err != nil {
		return nil, err
	}

	ext := ".pdf"
	if contentType == jpegMIME {
		ext = ".jpg"
	}
	key := fmt.Sprintf("%s/credentials/%s/%d_%s%s",
		userID, credentialID, time.Now().UnixNano(), storage.SanitizeFilename(filename), ext)
	url, err := u.put(ctx, key, contentType, body)
	if err != nil {
		return nil, err
	}

	cred.ProofDocumentURL = &url
	if err := u.store.UpdateCredential(ctx, cred); err != nil {
		return nil, credentialError(err)
	}

	return &domain.UploadResult{URL: url, ContentType: contentType, Size: len(body)}, nil
}

// prepare validates the file and re-encodes images as bounded JPEG.
func (u *uploadUsecase) prepare(ctx context.Context, kind storage.Kind, filename string, data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", apperror.BadRequest("Empty file")
	}
	if u.maxBytes > 0 && len(data) > u.maxBytes {
		return nil, "", apperror.TooLarge(fmt.Sprintf("File exceeds the %d MB limit", u.maxBytes>>20))
	}

	result := storage.ValidateFile(kind, filename, data)
	if !result.Valid {
		logger.FromContext(ctx).Warn("Upload rejected",
			zap.String("filename", filename),
			zap.String("detected_mime", result.DetectedMIME),
			zap.String("reason", result.Error))
		return nil, "", apperror.BadRequest("Invalid file: " + result.Error)
	}

	scan := u.scanner.Scan(ctx, filename, data)
	if scan.Error != nil {
		logger.FromContext(ctx).Error("Malware scan failed",
			zap.String("scanner", scan.ScannerName),
			zap.Error(scan.Error))
		return nil, "", apperror.Unavailable("File scanning is temporarily unavailable", scan.Error)
	}
	if scan.Infected {
		logger.FromContext(ctx).Warn("Infected upload rejected",
			zap.String("filename", filename),
			zap.String("scanner", scan.ScannerName),
			zap.String("threat", scan.ThreatName))
		return nil, "", apperror.BadRequest("File rejected by malware scan")
	}

	if !storage.IsImageMIME(result.DetectedMIME) {
		return data, result.DetectedMIME, nil
	}

	compressed, err := storage.CompressImage(data, storage.MaxImageDimension, storage.JPEGQuality)
	if err != nil {
		return nil, "", apperror.New(http.StatusBadRequest, "Image could not be processed", err)
	}
	logger.FromContext(ctx).Debug("Image compressed",
		zap.Int("original_size", len(data)),
		zap.Int("compressed_size", len(compressed)))
	return compressed, jpegMIME, nil
}

func (u *uploadUsecase) put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	url, err := u.objects.Put(ctx, key, contentType, body)
	if err != nil {
		return "", apperror.Unavailable("File storage unavailable, please try again later", err)
	}
	return url, nil
}
