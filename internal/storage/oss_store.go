package storage

import (
	"church/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossStore struct {
	bucket *oss.Bucket
	prefix string
	now    func() time.Time
}

func NewOSSStore(cfg config.Config) (MediaStore, error) {
	endpoint := strings.TrimSpace(cfg.StorageOSSEndpoint)
	if endpoint == "" {
		return nil, errors.New("storage: missing OSS endpoint")
	}
	bucketName := strings.TrimSpace(cfg.StorageOSSBucket)
	if bucketName == "" {
		return nil, errors.New("storage: missing OSS bucket")
	}
	accessKey := strings.TrimSpace(cfg.StorageOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.StorageOSSAccessKeySecret)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("storage: missing OSS credentials")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("storage: create OSS client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage: open OSS bucket: %w", err)
	}

	return &ossStore{bucket: bucket, prefix: cfg.StorageOSSPrefix, now: time.Now}, nil
}

func (s *ossStore) Put(ctx context.Context, body io.Reader, size int64, obj Object) (string, error) {
	if err := checkUpload(ctx, size, obj); err != nil {
		return "", err
	}

	key := joinPrefix(s.prefix, obj.Key(s.now()))
	err := s.bucket.PutObject(key, io.LimitReader(body, size),
		oss.WithContext(ctx),
		oss.ContentType(obj.ContentType()),
		oss.ContentLength(size),
	)
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

var _ MediaStore = (*ossStore)(nil)
