package service

import (
	"context"
	"log/slog"

	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/imagery"
)

// ImageService generates standalone images.
type ImageService struct {
	images ImageGenerator
	logger *slog.Logger
}

// NewImageService creates a new image service.
func NewImageService(images ImageGenerator, logger *slog.Logger) *ImageService {
	return &ImageService{images: images, logger: logger}
}

// Generate produces an image for req. Failures, including an unknown
// style, are reported in the result.
func (s *ImageService) Generate(ctx context.Context, req domain.ImageRequest) imagery.Result {
	style, err := imagery.ParseStyle(req.Style)
	if err != nil {
		return imagery.Result{Images: []imagery.Image{}, Error: err.Error()}
	}

	res := s.images.GenerateImage(ctx, req.Prompt, style, req.Size)
	if !res.Success {
		s.logger.Info("image request not fulfilled", "reason", res.Error)
	}
	return res
}
