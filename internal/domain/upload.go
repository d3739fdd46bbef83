package domain

import "context"

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// UploadResult is returned by the upload endpoints.
type UploadResult struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type UploadUsecase interface {
	UploadProfilePhoto(ctx context.Context, userID, filename string, data []byte) (*UploadResult, error)
	UploadProofDocument(ctx context.Context, userID, credentialID, filename string, data []byte) (*UploadResult, error)
}
