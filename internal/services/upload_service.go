package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"friendchat/internal/storage"
	friendchat_errors "friendchat/pkg/errors"
	"friendchat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMaxUploadBytes = 5 << 20

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type UploadService struct {
	store    storage.FileStore
	maxBytes int64
	log      *logger.Logger
}

func NewUploadService(store storage.FileStore, maxBytes int64, log *logger.Logger) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{store: store, maxBytes: maxBytes, log: log}
}

// ImageUpload describes one uploaded file. Open is called once and the
// returned handle is closed before Store returns.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Store validates and persists an image and returns its reference.
func (s *UploadService) Store(ctx context.Context, in ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(in.Filename))
	canonical, ok := allowedImageExts[ext]
	if !ok {
		return "", friendchat_errors.Invalid(fmt.Sprintf("file extension %q is not an allowed image type", ext))
	}
	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = canonical
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", friendchat_errors.Invalid("only image uploads are accepted")
	}
	if in.Size > s.maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds the %d byte limit", friendchat_errors.ErrTooLarge, in.Size, s.maxBytes)
	}

	f, err := in.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	body := &cappedReader{r: f, remaining: s.maxBytes}
	ref, err := s.store.Save(ctx, storedName(in.Filename, time.Now()), contentType, body, in.Size)
	if err != nil {
		if body.exceeded {
			return "", friendchat_errors.ErrTooLarge
		}
		s.log.Error(ctx, "failed to store upload", zap.Error(err))
		return "", err
	}
	return ref, nil
}

// Discard removes a stored file. Errors are logged, never returned.
func (s *UploadService) Discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.store.Delete(ctx, ref); err != nil {
		s.log.Error(ctx, "failed to discard upload", zap.String("ref", ref), zap.Error(err))
	}
}

// storedName is <unix-millis>-<random>-<sanitized original name>.
func storedName(original string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "image"
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), random, base)
}

// cappedReader fails once more than remaining bytes are read, so a client
// that lies about the part size cannot exceed the limit.
type cappedReader struct {
	r         io.Reader
	remaining int64
	exceeded  bool
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		c.exceeded = true
		return 0, friendchat_errors.ErrTooLarge
	}
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		c.exceeded = true
		return n, friendchat_errors.ErrTooLarge
	}
	return n, err
}
