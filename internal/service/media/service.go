package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"rewear/internal/config"
	"rewear/internal/domain"
	"rewear/internal/repository"
)

const MaxImageSize = 10 << 20

var ErrStorageUnavailable = errors.New("object storage is not configured")

// ObjectStore is the subset of *minio.Client used for item images.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Upload struct {
	FileName    string
	Size        int64
	ContentType string
	Body        io.Reader
}

type Service interface {
	UploadItemImage(ctx context.Context, itemID, actorID int64, upload Upload) (*domain.Item, error)
}

type service struct {
	itemRepo repository.ItemRepository
	store    ObjectStore
	cfg      *config.Config
}

func NewService(itemRepo repository.ItemRepository, store ObjectStore, cfg *config.Config) Service {
	return &service{
		itemRepo: itemRepo,
		store:    store,
		cfg:      cfg,
	}
}

func (s *service) UploadItemImage(ctx context.Context, itemID, actorID int64, upload Upload) (*domain.Item, error) {
	v := &domain.ValidationError{}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		v.Add("file", "must be an image")
	}
	if upload.Size <= 0 || upload.Size > MaxImageSize {
		v.Add("file", "must be between 1 byte and 10 MB")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != actorID {
		return nil, domain.NewAuthorizationError("only the owner can add images to an item")
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}

	key := fmt.Sprintf("items/%d/%s%s", itemID, uuid.NewString(), strings.ToLower(path.Ext(upload.FileName)))
	_, err = s.store.PutObject(ctx, s.cfg.MinIOBucket, key, upload.Body, upload.Size, minio.PutObjectOptions{
		ContentType: upload.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	updated, err := s.itemRepo.AppendImage(ctx, itemID, s.publicURL(key))
	if err != nil {
		_ = s.store.RemoveObject(ctx, s.cfg.MinIOBucket, key, minio.RemoveObjectOptions{})
		return nil, err
	}
	return updated, nil
}

func (s *service) publicURL(key string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, (&url.URL{Path: key}).EscapedPath())
}
