// Package media stores vendor portfolio images in MinIO and their metadata in
// the record store, one record per vendor.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"wedding-liaison/internal/config"
	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
)

var (
	ErrNotFound    = errors.New("portfolio item not found")
	ErrUnavailable = errors.New("media storage unavailable")
)

func recordName(vendorID string) string {
	return "portfolio_" + vendorID
}

type Service interface {
	Upload(ctx context.Context, vendorID, fileName string, fileSize int64, mimeType, caption string, reader io.Reader) (*domain.PortfolioItem, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.PortfolioItem, error)
	Delete(ctx context.Context, vendorID, itemID string) error
}

type service struct {
	records     recordstore.Store
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(records recordstore.Store, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		records:     records,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, vendorID, fileName string, fileSize int64, mimeType, caption string, reader io.Reader) (*domain.PortfolioItem, error) {
	if s.minioClient == nil {
		return nil, ErrUnavailable
	}

	vendorID = domain.NormalizeVendorID(vendorID)
	itemID := uuid.New().String()
	storagePath := fmt.Sprintf("portfolio/%s/%s", vendorID, itemID)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	item := domain.PortfolioItem{
		ID:          itemID,
		VendorID:    vendorID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
		Caption:     caption,
		UploadedAt:  time.Now().UTC(),
	}

	items, err := s.load(ctx, vendorID)
	if err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}
	items = append(items, item)
	if err := s.save(ctx, vendorID, items); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	item.URL = s.publicURL(storagePath)
	return &item, nil
}

func (s *service) ListByVendor(ctx context.Context, vendorID string) ([]domain.PortfolioItem, error) {
	items, err := s.load(ctx, domain.NormalizeVendorID(vendorID))
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].URL = s.publicURL(items[i].StoragePath)
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, vendorID, itemID string) error {
	vendorID = domain.NormalizeVendorID(vendorID)
	items, err := s.load(ctx, vendorID)
	if err != nil {
		return err
	}

	for i, item := range items {
		if item.ID == itemID {
			items = append(items[:i], items[i+1:]...)
			if err := s.save(ctx, vendorID, items); err != nil {
				return err
			}
			if s.minioClient != nil {
				_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, item.StoragePath, minio.RemoveObjectOptions{})
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *service) load(ctx context.Context, vendorID string) ([]domain.PortfolioItem, error) {
	data, err := s.records.Get(ctx, recordName(vendorID))
	if err == recordstore.ErrNotFound {
		return []domain.PortfolioItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []domain.PortfolioItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) save(ctx context.Context, vendorID string, items []domain.PortfolioItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.records.Put(ctx, recordName(vendorID), data)
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
