package storage

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

// Kind selects the whitelist a file is checked against.
type Kind int

const (
	KindPhoto Kind = iota
	KindProofDocument
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// Magic byte signatures per lowercase extension
var magicBytes = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".webp": {{0x52, 0x49, 0x46, 0x46}}, // RIFF header
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
}

var allowedExtensions = map[Kind]map[string]bool{
	KindPhoto: {
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
	},
	KindProofDocument: {
		".jpg": true, ".jpeg": true, ".png": true, ".pdf": true,
	},
}

// application/octet-stream is never accepted.
var strictMIMETypes = map[Kind]map[string]bool{
	KindPhoto: {
		"image/jpeg": true, "image/png": true, "image/webp": true,
	},
	KindProofDocument: {
		"image/jpeg": true, "image/png": true, "application/pdf": true,
	},
}

// ValidateFile performs 3-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist, sniffed from the content
func ValidateFile(kind Kind, filename string, data []byte) FileValidationResult {
	result := FileValidationResult{DetectedMIME: http.DetectContentType(data)}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if !allowedExtensions[kind][ext] {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	if !strictMIMETypes[kind][result.DetectedMIME] {
		result.Error = "MIME type not allowed: " + result.DetectedMIME
		return result
	}

	result.Valid = true
	return result
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// IsImageMIME reports whether the detected type is re-encoded before upload.
func IsImageMIME(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// SanitizeFilename keeps ASCII letters, digits, '_' and '-' of the base name.
func SanitizeFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ReplaceAll(base, " ", "_")

	var result strings.Builder
	for _, r := range base {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "file"
	}
	return result.String()
}
