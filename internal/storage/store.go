package storage

import (
	"church/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
)

var (
	// ErrEmptyObject is returned when an upload carries no bytes.
	ErrEmptyObject = errors.New("storage: empty object")
	// ErrUnsupportedMedia is returned for a media kind or file extension sermons cannot hold.
	ErrUnsupportedMedia = errors.New("storage: unsupported media")
)

// MediaStore persists uploaded sermon recordings and returns the object key
// under which the bytes were written.
type MediaStore interface {
	Put(ctx context.Context, body io.Reader, size int64, obj Object) (string, error)
}

// LocalDirProvider is implemented by stores whose objects can be served
// straight from disk.
type LocalDirProvider interface {
	LocalDir() string
}

// NewMediaStore instantiates the backend selected by STORAGE_TYPE.
func NewMediaStore(cfg config.Config) (MediaStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.StorageType)) {
	case "", TypeLocal:
		return NewLocalStore(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Store(cfg)
	case TypeOSS:
		return NewOSSStore(cfg)
	case TypeCOS:
		return NewCOSStore(cfg)
	case TypeR2:
		return NewR2Store(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

func checkUpload(ctx context.Context, size int64, obj Object) error {
	if size <= 0 {
		return ErrEmptyObject
	}
	if err := obj.Validate(); err != nil {
		return err
	}
	return ctx.Err()
}
