package v1

import (
	"errors"
	"io"
	"net/http"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundaries and headers around the file part.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadUC domain.UploadUsecase
	maxBytes int64
}

func NewUploadHandler(r *gin.RouterGroup, uploadUC domain.UploadUsecase, maxBytes int64, middlewares ...gin.HandlerFunc) {
	handler := &UploadHandler{uploadUC: uploadUC, maxBytes: maxBytes}

	uploads := r.Group("/candidates/me")
	uploads.Use(middlewares...)
	{
		uploads.POST("/photo", handler.UploadPhoto)
		uploads.POST("/credentials/:id/proof", handler.UploadProof)
	}
}

// UploadPhoto godoc
// @Summary      Upload profile photo
// @Description  JPEG, PNG or WebP. Images are resized and re-encoded as JPEG.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Photo"
// @Success      200   {object}  response.Response{data=domain.UploadResult}
// @Failure      400   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /candidates/me/photo [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	filename, data, ok := h.readFile(c)
	if !ok {
		return
	}

	result, err := h.uploadUC.UploadProfilePhoto(c.Request.Context(), currentUserID(c), filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Photo uploaded", result)
}

// UploadProof godoc
// @Summary      Upload credential proof document
// @Description  PDF or image attached to one of the candidate's academic credentials
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Credential ID"
// @Param        file  formData  file    true  "Proof document"
// @Success      200   {object}  response.Response{data=domain.UploadResult}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Router       /candidates/me/credentials/{id}/proof [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadProof(c *gin.Context) {
	filename, data, ok := h.readFile(c)
	if !ok {
		return
	}

	result, err := h.uploadUC.UploadProofDocument(c.Request.Context(), currentUserID(c), c.Param("id"), filename, data)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Proof document uploaded", result)
}

// readFile reads the "file" part. One byte past the limit is kept so the
// usecase can reject oversized files with 413.
func (h *UploadHandler) readFile(c *gin.Context) (string, []byte, bool) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Error(apperror.TooLarge("File is too large"))
			return "", nil, false
		}
		c.Error(apperror.New(http.StatusBadRequest, "No file uploaded", err))
		return "", nil, false
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Failed to open file", err))
		return "", nil, false
	}
	defer src.Close()

	reader := io.Reader(src)
	if h.maxBytes > 0 {
		reader = io.LimitReader(src, h.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Failed to read file", err))
		return "", nil, false
	}

	return fileHeader.Filename, data, true
}
