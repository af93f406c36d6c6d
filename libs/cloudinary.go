package libs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"abeg-fix/config"
	"abeg-fix/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrCloudinaryNotConfigured = errors.New("cloudinary credentials not configured")

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService prefers the discrete CLOUDINARY_* credentials and falls
// back to CLOUDINARY_URL.
func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case cfg.CloudinaryURL != "":
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	default:
		return nil, ErrCloudinaryNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

func (s *CloudinaryService) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	publicID := fmt.Sprintf("%d_%s", time.Now().UnixNano(), strings.ReplaceAll(base, " ", "_"))

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "abeg-fix/" + folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	if result.URL != "" {
		return result.URL, nil
	}
	return "", fmt.Errorf("cloudinary returned no URL for %s", publicID)
}

// ValidateImageFile checks extension and size before anything is uploaded.
func ValidateImageFile(file *multipart.FileHeader, maxSize int64) error {
	if maxSize > 0 && file.Size > maxSize {
		return fmt.Errorf("%w: file too large (max %dMB)", models.ErrValidation, maxSize/(1024*1024))
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return fmt.Errorf("%w: invalid file type, only jpg, jpeg, png, gif, webp allowed", models.ErrValidation)
	}
	return nil
}

// DisabledUploader rejects every upload. It is used when no Cloudinary
// credentials are configured.
type DisabledUploader struct{}

func (DisabledUploader) UploadImage(context.Context, io.Reader, string, string) (string, error) {
	return "", fmt.Errorf("%w: image uploads are not configured", models.ErrValidation)
}
