package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tripvault/tripvault/internal/domain"
)

const (
	// maxUploadFiles matches the photo limit on a trip.
	maxUploadFiles = 5
	// maxFileSize caps a single uploaded photo.
	maxFileSize = 10 << 20 // 10MB
)

// UploadService stores uploaded photos and hands back their public URLs.
// If a later trip create fails, the already-stored photos are orphaned;
// there is no compensating cleanup. Known gap.
type UploadService struct {
	files   domain.FileStore
	baseURL string
}

// NewUploadService creates a new UploadService. baseURL prefixes the
// returned photo URLs and may be empty for relative URLs.
func NewUploadService(files domain.FileStore, baseURL string) *UploadService {
	return &UploadService{files: files, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// UploadFile is one file received from a multipart request.
type UploadFile struct {
	Name string
	Data []byte
}

// SavePhotos persists up to maxUploadFiles image files and returns their
// URLs in input order. The content type is detected from the bytes, not
// trusted from the request.
func (s *UploadService) SavePhotos(ctx context.Context, files []UploadFile) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files provided", domain.ErrInvalidInput)
	}
	if len(files) > maxUploadFiles {
		return nil, fmt.Errorf("%w: at most %d files allowed", domain.ErrInvalidInput, maxUploadFiles)
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		if len(f.Data) > maxFileSize {
			return nil, fmt.Errorf("%w: file %q exceeds the %dMB limit", domain.ErrInvalidInput, f.Name, maxFileSize>>20)
		}

		contentType := http.DetectContentType(f.Data)
		if !strings.HasPrefix(contentType, "image/") {
			return nil, fmt.Errorf("%w: file %q is not an image", domain.ErrInvalidInput, f.Name)
		}

		key := uuid.NewString()
		if err := s.files.Save(ctx, key, contentType, f.Data); err != nil {
			return nil, fmt.Errorf("save photo: %w", err)
		}
		urls = append(urls, s.baseURL+"/uploads/"+key)
	}
	return urls, nil
}

// GetPhoto returns a stored photo's content type and bytes.
func (s *UploadService) GetPhoto(ctx context.Context, key string) (string, []byte, error) {
	return s.files.Get(ctx, key)
}
