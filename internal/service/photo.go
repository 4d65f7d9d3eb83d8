package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/freshkeep/backend/internal/apperrors"
	"github.com/pageza/freshkeep/backend/internal/types"
)

var photoExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// PhotoService issues presigned URLs for item photos
type PhotoService struct {
	storage   Presigner
	inventory IInventoryService
}

// NewPhotoService creates a PhotoService. A nil storage makes every call
// report the feature as unavailable.
func NewPhotoService(storage Presigner, inventory IInventoryService) *PhotoService {
	return &PhotoService{storage: storage, inventory: inventory}
}

var errStorageDisabled = apperrors.Unavailable("photo storage is not configured")

// UploadURL reserves a new key for the item's photo and returns a URL the
// client can PUT the image to
func (s *PhotoService) UploadURL(ctx context.Context, userID, itemID uuid.UUID, contentType string) (*types.PhotoURLResponse, error) {
	if s.storage == nil {
		return nil, errStorageDisabled
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	ext, ok := photoExtensions[contentType]
	if !ok {
		return nil, apperrors.BadRequest("unsupported content type")
	}

	if _, err := s.inventory.Get(ctx, userID, itemID); err != nil {
		return nil, err
	}

	key := PhotoKey(userID, itemID, uuid.New(), ext)
	url, err := s.storage.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}
	if err := s.inventory.SetPhotoKey(ctx, userID, itemID, key); err != nil {
		return nil, err
	}
	return &types.PhotoURLResponse{URL: url, Key: key}, nil
}

// DownloadURL returns a URL for the item's current photo
func (s *PhotoService) DownloadURL(ctx context.Context, userID, itemID uuid.UUID) (*types.PhotoURLResponse, error) {
	if s.storage == nil {
		return nil, errStorageDisabled
	}

	item, err := s.inventory.Get(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.PhotoKey == "" {
		return nil, apperrors.NotFound("photo")
	}

	url, err := s.storage.PresignDownload(ctx, item.PhotoKey)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download: %w", err)
	}
	return &types.PhotoURLResponse{URL: url, Key: item.PhotoKey}, nil
}

// PhotoKey builds the object key items/<user>/<item>/<photo>.<ext>
func PhotoKey(userID, itemID, photoID uuid.UUID, ext string) string {
	return fmt.Sprintf("items/%s/%s/%s.%s", userID, itemID, photoID, ext)
}
