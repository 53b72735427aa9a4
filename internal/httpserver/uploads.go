package httpserver

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/transport"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

const (
	uploadField    = "image"
	maxUploadFiles = 12
	imagesPrefix   = "/images/"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadHTTP struct {
	Dir string
	Now func() time.Time
}

func (h *UploadHTTP) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Upload stores 1 to 12 images from the multipart field "image" and returns
// the public paths they are served under.
func (h *UploadHTTP) Upload(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "uploads.upload")

	form, err := c.MultipartForm()
	if err != nil {
		l.Warn("upload_failed", "status", 400, "reason", "not a multipart form", "error", err)
		return badRequest("expected multipart form")
	}
	files := form.File[uploadField]
	if len(files) == 0 || len(files) > maxUploadFiles {
		l.Warn("upload_failed", "status", 400, "reason", "file count", "count", len(files))
		return badRequest(fmt.Sprintf("between 1 and %d files required in field %q", maxUploadFiles, uploadField))
	}
	for _, fh := range files {
		if !allowedImageExt[strings.ToLower(filepath.Ext(fh.Filename))] {
			l.Warn("upload_failed", "status", 400, "reason", "extension", "file", fh.Filename)
			return badRequest("unsupported file type: " + fh.Filename)
		}
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		l.Error("upload_failed", "status", 500, "reason", "mkdir", "error", err)
		return newHTTPError(http.StatusInternalServerError, kindInternal, "cannot store files")
	}

	stamp := h.now().UnixMilli()
	batch := uuid.NewString()[:8]
	out := make([]string, 0, len(files))
	for i, fh := range files {
		name := fmt.Sprintf("image-%d-%s-%d%s", stamp, batch, i, strings.ToLower(filepath.Ext(fh.Filename)))
		if err := saveFile(fh, filepath.Join(h.Dir, name)); err != nil {
			l.Error("upload_failed", "status", 500, "reason", "write", "error", err)
			return newHTTPError(http.StatusInternalServerError, kindInternal, "cannot store files")
		}
		out = append(out, imagesPrefix+name)
	}

	l.Info("upload_success", "count", len(out))
	return c.JSON(http.StatusCreated, transport.UploadResponse{Files: out})
}

func saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
