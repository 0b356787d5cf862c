package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/okzdev/microblog/backend/internal/apperr"
	"github.com/okzdev/microblog/backend/internal/models"
	"github.com/okzdev/microblog/backend/internal/repositories"
	"github.com/okzdev/microblog/backend/internal/storage"
)

// MediaHandler handles media upload requests
type MediaHandler struct {
	mediaRepository repositories.MediaRepository
	blobStorage     storage.BlobStorage
	maxUploadBytes  int64
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository, blobStorage storage.BlobStorage, maxUploadBytes int64) *MediaHandler {
	return &MediaHandler{
		mediaRepository: mediaRepo,
		blobStorage:     blobStorage,
		maxUploadBytes:  maxUploadBytes,
	}
}

// RegisterMediaRoutes registers media-related routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/medias", h.UploadMedia)
}

// UploadMedia stores the uploaded file and creates an unattached media row.
// The returned id is referenced later by tweet creation; an unreferenced row
// stays unattached indefinitely.
func (h *MediaHandler) UploadMedia(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperr.Validation("file field is required")
	}
	if fileHeader.Filename == "" {
		return apperr.Validation("empty filename")
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return apperr.Validation("file exceeds maximum upload size")
	}

	name := secureFilename(fileHeader.Filename)
	if name == "" {
		return apperr.Validation("empty filename")
	}
	// Prefix with a UUID so two uploads of the same name never collide.
	stored := uuid.NewString() + "_" + name

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	if err := h.blobStorage.Save(c.Request().Context(), stored, src, fileHeader.Size); err != nil {
		return err
	}

	media := &models.Media{Filename: stored}
	if err := h.mediaRepository.CreateMedia(media); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"result": true, "media_id": media.ID})
}

// secureFilename strips any path components and characters that could be
// used for traversal, keeping letters, digits, dot, dash and underscore.
func secureFilename(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), ".")
}
