package storage

import (
	"church/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tencentyun/cos-go-sdk-v5"
)

type cosStore struct {
	client *cos.Client
	prefix string
	now    func() time.Time
}

func NewCOSStore(cfg config.Config) (MediaStore, error) {
	baseURL := strings.TrimSpace(cfg.StorageCOSBucketURL)
	if baseURL == "" {
		return nil, errors.New("storage: missing COS bucket URL")
	}
	bucketURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: parse COS bucket URL: %w", err)
	}

	secretID := strings.TrimSpace(cfg.StorageCOSSecretID)
	secretKey := strings.TrimSpace(cfg.StorageCOSSecretKey)
	if secretID == "" || secretKey == "" {
		return nil, errors.New("storage: missing COS credentials")
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{SecretID: secretID, SecretKey: secretKey},
	})
	return &cosStore{client: client, prefix: cfg.StorageCOSPrefix, now: time.Now}, nil
}

func (s *cosStore) Put(ctx context.Context, body io.Reader, size int64, obj Object) (string, error) {
	if err := checkUpload(ctx, size, obj); err != nil {
		return "", err
	}

	key := joinPrefix(s.prefix, obj.Key(s.now()))
	resp, err := s.client.Object.Put(ctx, key, io.LimitReader(body, size), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   obj.ContentType(),
			ContentLength: size,
		},
	})
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}

var _ MediaStore = (*cosStore)(nil)
