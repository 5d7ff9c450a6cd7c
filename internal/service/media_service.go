package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"scentfeed/internal/config"
	"scentfeed/internal/domain"
	"scentfeed/internal/repository"
)

type MediaService interface {
	Upload(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type mediaService struct {
	mediaRepo   repository.MediaRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewMediaService(mediaRepo repository.MediaRepository, minioClient *minio.Client, cfg *config.Config) MediaService {
	return &mediaService{
		mediaRepo:   mediaRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *mediaService) Upload(ctx context.Context, userID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Media, error) {
	mediaID := uuid.New()
	storagePath := fmt.Sprintf("posts/%s/%s", time.Now().Format("2006/01"), mediaID.String())

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	media := &domain.Media{
		ID:          mediaID,
		UploadedBy:  userID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
	}

	if err := s.mediaRepo.Create(ctx, media); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	media.URL = s.publicURL(storagePath)
	return media, nil
}

func (s *mediaService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Media, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
	}

	media.URL = s.publicURL(media.StoragePath)
	return media, nil
}

func (s *mediaService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
	}

	if media.UploadedBy != userID {
		return domain.ErrForbidden
	}

	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return err
	}

	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, media.StoragePath, minio.RemoveObjectOptions{})
}

func (s *mediaService) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   s.cfg.MinIOPublicEndpoint,
		Path:   fmt.Sprintf("/%s/%s", s.cfg.MinIOBucket, storagePath),
	}
	return u.String()
}
