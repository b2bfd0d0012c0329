package http

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelierdv/portfolio-migrator/internal/storage"
)

// UploadController pushes admin-uploaded files to the object-storage bucket.
type UploadController struct {
	store storage.ObjectStore
	now   func() time.Time
}

func NewUploadController(store storage.ObjectStore) *UploadController {
	return &UploadController{
		store: store,
		now:   time.Now,
	}
}

// Upload accepts a multipart file, stores it under a timestamped key and
// returns its public URL.
func (u *UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondInternalError(c, err, "upload")
		return
	}
	defer file.Close()

	key := fmt.Sprintf("uploads/%d-%s", u.now().UnixMilli(), sanitizeFilename(header.Filename))

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := u.store.Upload(c.Request.Context(), key, file, contentType); err != nil {
		respondInternalError(c, err, "upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key": key,
		"url": u.store.PublicURL(key),
	})
}

// sanitizeFilename keeps the base name and replaces characters that have no
// place in an object key.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
