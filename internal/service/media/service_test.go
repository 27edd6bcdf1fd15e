package media_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rewear/internal/config"
	"rewear/internal/domain"
	"rewear/internal/mocks"
	"rewear/internal/service/media"
)

type memoryStore struct {
	objects map[string]string
	putErr  error
}

func (m *memoryStore) PutObject(_ context.Context, bucket, key string, r io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if m.putErr != nil {
		return minio.UploadInfo{}, m.putErr
	}
	body, _ := io.ReadAll(r)
	m.objects[bucket+"/"+key] = string(body)
	return minio.UploadInfo{Bucket: bucket, Key: key}, nil
}

func (m *memoryStore) RemoveObject(_ context.Context, bucket, key string, _ minio.RemoveObjectOptions) error {
	delete(m.objects, bucket+"/"+key)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{MinIOBucket: "rewear-items", MinIOPublicEndpoint: "cdn.example.com", MinIOPublicUseSSL: true}
}

func jpeg() media.Upload {
	return media.Upload{FileName: "Front.JPG", Size: 4, ContentType: "image/jpeg", Body: strings.NewReader("abcd")}
}

func TestUploadItemImage(t *testing.T) {
	ctx := context.Background()

	t.Run("stores object and appends url", func(t *testing.T) {
		items := new(mocks.ItemRepository)
		store := &memoryStore{objects: map[string]string{}}
		svc := media.NewService(items, store, testConfig())

		items.On("GetByID", ctx, int64(7)).Return(&domain.Item{ID: 7, UserID: 2}, nil).Once()
		var appended string
		items.On("AppendImage", ctx, int64(7), mock.AnythingOfType("string")).Run(func(args mock.Arguments) {
			appended = args.String(2)
		}).Return(&domain.Item{ID: 7, UserID: 2}, nil).Once()

		_, err := svc.UploadItemImage(ctx, 7, 2, jpeg())

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(appended, "https://cdn.example.com/rewear-items/items/7/"))
		assert.True(t, strings.HasSuffix(appended, ".jpg"))
		require.Len(t, store.objects, 1)
		for key, body := range store.objects {
			assert.True(t, strings.HasPrefix(key, "rewear-items/items/7/"))
			assert.Equal(t, "abcd", body)
		}
	})

	t.Run("only the owner may upload", func(t *testing.T) {
		items := new(mocks.ItemRepository)
		store := &memoryStore{objects: map[string]string{}}
		svc := media.NewService(items, store, testConfig())
		items.On("GetByID", ctx, int64(7)).Return(&domain.Item{ID: 7, UserID: 2}, nil).Once()

		_, err := svc.UploadItemImage(ctx, 7, 3, jpeg())

		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, store.objects)
	})

	t.Run("rejects non images", func(t *testing.T) {
		svc := media.NewService(new(mocks.ItemRepository), &memoryStore{}, testConfig())
		up := jpeg()
		up.ContentType = "application/pdf"

		_, err := svc.UploadItemImage(ctx, 7, 2, up)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("removes object when item update fails", func(t *testing.T) {
		items := new(mocks.ItemRepository)
		store := &memoryStore{objects: map[string]string{}}
		svc := media.NewService(items, store, testConfig())
		items.On("GetByID", ctx, int64(7)).Return(&domain.Item{ID: 7, UserID: 2}, nil).Once()
		items.On("AppendImage", ctx, int64(7), mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := svc.UploadItemImage(ctx, 7, 2, jpeg())

		assert.Error(t, err)
		assert.Empty(t, store.objects)
	})

	t.Run("storage not configured", func(t *testing.T) {
		items := new(mocks.ItemRepository)
		svc := media.NewService(items, nil, testConfig())
		items.On("GetByID", ctx, int64(7)).Return(&domain.Item{ID: 7, UserID: 2}, nil).Once()

		_, err := svc.UploadItemImage(ctx, 7, 2, jpeg())
		assert.ErrorIs(t, err, media.ErrStorageUnavailable)
	})
}
