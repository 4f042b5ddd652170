package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"church/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectValidate(t *testing.T) {
	tests := []struct {
		name    string
		obj     Object
		wantErr bool
	}{
		{name: "audio mp3", obj: NewObject(1, "audio", "Sunday.MP3")},
		{name: "video mp4", obj: NewObject(1, " Video ", "service.mp4")},
		{name: "video extension for audio", obj: NewObject(1, "audio", "service.mp4"), wantErr: true},
		{name: "unknown kind", obj: NewObject(1, "slides", "deck.pdf"), wantErr: true},
		{name: "no extension", obj: NewObject(1, "audio", "recording"), wantErr: true},
		{name: "missing sermon", obj: NewObject(0, "audio", "a.mp3"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.obj.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedMedia)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestObjectKeyAndContentType(t *testing.T) {
	obj := NewObject(42, "audio", "sermon.m4a")
	at := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

	key := obj.Key(at)
	assert.True(t, strings.HasPrefix(key, "sermons/42/audio/2024/03/"), key)
	assert.True(t, strings.HasSuffix(key, ".m4a"), key)
	assert.Equal(t, "audio/mp4", obj.ContentType())
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "/files/sermons/1/a.mp3", PublicURL("/files/", "/sermons/1/a.mp3"))
	assert.Equal(t, "https://cdn.example.org/sermons/1/a.mp3", PublicURL("https://cdn.example.org", "sermons/1/a.mp3"))
	assert.Equal(t, "/sermons/1/a.mp3", PublicURL("", "sermons/1/a.mp3"))
	assert.Empty(t, PublicURL("/files", ""))
}

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.LocalDir())

	payload := []byte("ID3 fake mp3 payload")
	key, err := store.Put(context.Background(), bytes.NewReader(payload), int64(len(payload)), NewObject(7, "audio", "a.mp3"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	entries, err := os.ReadDir(filepath.Dir(filepath.Join(dir, filepath.FromSlash(key))))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary upload file must not remain")
}

func TestLocalStoreRejectsBadUploads(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(context.Background(), bytes.NewReader(nil), 0, NewObject(1, "audio", "a.mp3"))
	assert.ErrorIs(t, err, ErrEmptyObject)

	_, err = store.Put(context.Background(), strings.NewReader("x"), 1, NewObject(1, "audio", "a.exe"))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	_, err = store.Put(context.Background(), strings.NewReader("short"), 100, NewObject(1, "audio", "a.mp3"))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Put(ctx, strings.NewReader("x"), 1, NewObject(1, "audio", "a.mp3"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewMediaStoreSelectsBackend(t *testing.T) {
	store, err := NewMediaStore(config.Config{StorageType: "LOCAL", StorageLocalDir: t.TempDir()})
	require.NoError(t, err)
	_, ok := store.(LocalDirProvider)
	assert.True(t, ok)

	_, err = NewMediaStore(config.Config{StorageType: "ftp"})
	assert.Error(t, err)

	_, err = NewMediaStore(config.Config{StorageType: TypeS3, StorageS3Bucket: "media"})
	assert.Error(t, err, "missing region and credentials")

	_, err = NewMediaStore(config.Config{StorageType: TypeR2, StorageR2Bucket: "media", StorageR2AccessKeyID: "k", StorageR2SecretAccessKey: "s"})
	assert.Error(t, err, "missing endpoint and account id")

	s3Store, err := NewMediaStore(config.Config{
		StorageType:              TypeS3,
		StorageS3Bucket:          "media",
		StorageS3Region:          "us-east-1",
		StorageS3AccessKeyID:     "key",
		StorageS3SecretAccessKey: "secret",
		StorageS3Endpoint:        "minio.local:9000",
	})
	require.NoError(t, err)
	assert.NotNil(t, s3Store)

	_, err = NewMediaStore(config.Config{StorageType: TypeCOS, StorageCOSBucketURL: "https://media-1250000000.cos.ap-guangzhou.myqcloud.com"})
	assert.Error(t, err, "missing COS credentials")

	_, err = NewMediaStore(config.Config{StorageType: TypeOSS})
	assert.Error(t, err)
}
