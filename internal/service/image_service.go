// Package service implements the application's business logic.
package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"foodgram/internal/config"
	"foodgram/internal/models"

	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultMediaDir         = "media"
	MaxImagePayloadSizeMB   = 10
	maxImagePayloadSizeByte = MaxImagePayloadSizeMB * 1024 * 1024
)

// ImageService stores recipe images uploaded as base64 payloads.
// Files are content-addressed so re-uploads of the same bytes dedupe.
type ImageService struct {
	mediaDir string
}

// NewImageService returns an ImageService writing into the configured media dir.
func NewImageService(cfg *config.Config) *ImageService {
	mediaDir := DefaultMediaDir
	if cfg != nil && cfg.MediaDir != "" {
		mediaDir = cfg.MediaDir
	}
	return &ImageService{mediaDir: mediaDir}
}

// SaveBase64 decodes a base64 image payload (optionally a data URL), validates
// it decodes as an image, writes it under the media dir and returns the URL path.
func (s *ImageService) SaveBase64(payload string) (string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", models.NewValidationError("Image is required")
	}

	// Strip a "data:image/png;base64," style prefix if present.
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ";base64,")
		if idx < 0 {
			return "", models.NewValidationError("Invalid image data URL")
		}
		payload = payload[idx+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", models.NewValidationError("Invalid base64 image payload")
	}
	if len(raw) == 0 {
		return "", models.NewValidationError("Image is required")
	}
	if len(raw) > maxImagePayloadSizeByte {
		return "", models.NewValidationError(fmt.Sprintf("Image too large (max %dMB)", MaxImagePayloadSizeMB))
	}

	detectedType := http.DetectContentType(raw)
	if !strings.HasPrefix(detectedType, "image/") {
		return "", models.NewValidationError("Payload is not an image")
	}

	cfgImg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if cfgImg.Width == 0 || cfgImg.Height == 0 {
		return "", models.NewValidationError("Invalid image dimensions")
	}

	ext := formatExtension(format)
	if ext == "" {
		return "", models.NewValidationError("Unsupported image format")
	}

	sum := sha256.Sum256(raw)
	name := hex.EncodeToString(sum[:]) + ext

	if err := os.MkdirAll(s.mediaDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	path := filepath.Join(s.mediaDir, name)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return "", models.NewInternalError(err)
		}
	}

	return "/media/" + name, nil
}

func formatExtension(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	case "webp":
		return ".webp"
	default:
		return ""
	}
}
