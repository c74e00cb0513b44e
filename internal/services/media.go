package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"ascenda-backend-go/internal/models"
	"ascenda-backend-go/internal/store"

	"github.com/google/uuid"
)

const (
	BucketUsers   = "users"
	BucketCourses = "courses"
)

type MediaService struct {
	store    *store.Store
	basePath string
}

func NewMediaService(s *store.Store, basePath string) *MediaService {
	return &MediaService{store: s, basePath: basePath}
}

func EnsureStoragePath(base string, bucket string) (string, error) {
	path := filepath.Join(base, bucket)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

// Save streams the upload to disk and records the asset. The storage key is
// the asset id; the original filename is metadata only.
func (s *MediaService) Save(ctx context.Context, bucket, contentType, filename, ownerID string, body io.Reader) (models.MediaAsset, string, error) {
	if bucket != BucketUsers && bucket != BucketCourses {
		return models.MediaAsset{}, "", ErrBadRequest("Unknown media bucket")
	}
	assetID := uuid.NewString()
	bucketPath, err := EnsureStoragePath(s.basePath, bucket)
	if err != nil {
		return models.MediaAsset{}, "", err
	}
	targetPath := filepath.Join(bucketPath, assetID)

	file, err := os.Create(targetPath)
	if err != nil {
		return models.MediaAsset{}, "", err
	}
	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(file, hasher), body)
	_ = file.Close()
	if err != nil {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, "", err
	}
	if size == 0 {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, "", ErrBadRequest("Uploaded file is empty")
	}

	asset := models.MediaAsset{
		ID:          assetID,
		OwnerUserID: ownerID,
		Bucket:      bucket,
		StorageKey:  assetID,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   size,
		Sha256:      hex.EncodeToString(hasher.Sum(nil)),
	}
	rec, err := store.Encode(asset)
	if err != nil {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, "", err
	}
	created, err := s.store.Create(ctx, rec)
	if err != nil {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, "", err
	}
	if err := store.Decode(created, &asset); err != nil {
		return models.MediaAsset{}, "", err
	}
	return asset, BuildAssetURL(asset.ID), nil
}

func BuildAssetURL(assetID string) string {
	return "/api/media/assets/" + assetID + "/content"
}

func (s *MediaService) ByID(ctx context.Context, assetID string) (models.MediaAsset, error) {
	rec, err := s.store.FindByID(ctx, assetID)
	if err != nil {
		return models.MediaAsset{}, ErrNotFound("Media asset not found")
	}
	var asset models.MediaAsset
	if err := store.Decode(rec, &asset); err != nil {
		return models.MediaAsset{}, err
	}
	return asset, nil
}

// Open returns the on-disk content of an asset. The caller closes the file.
func (s *MediaService) Open(ctx context.Context, assetID string) (*os.File, models.MediaAsset, error) {
	asset, err := s.ByID(ctx, assetID)
	if err != nil {
		return nil, models.MediaAsset{}, err
	}
	file, err := os.Open(filepath.Join(s.basePath, asset.Bucket, asset.StorageKey))
	if err != nil {
		return nil, models.MediaAsset{}, ErrNotFound("Media content missing")
	}
	return file, asset, nil
}

// Delete removes the record and the file. Missing assets are not an error.
func (s *MediaService) Delete(ctx context.Context, assetID string) error {
	asset, err := s.ByID(ctx, assetID)
	if err != nil {
		return nil
	}
	if err := s.store.Remove(ctx, assetID); err != nil {
		return err
	}
	_ = os.Remove(filepath.Join(s.basePath, asset.Bucket, asset.StorageKey))
	return nil
}
