package storage

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"
)

const (
	KindAudio = "audio"
	KindVideo = "video"
)

var allowedExtensions = map[string]map[string]string{
	KindAudio: {
		"mp3":  "audio/mpeg",
		"m4a":  "audio/mp4",
		"aac":  "audio/aac",
		"wav":  "audio/wav",
		"ogg":  "audio/ogg",
		"flac": "audio/flac",
	},
	KindVideo: {
		"mp4":  "video/mp4",
		"m4v":  "video/x-m4v",
		"mov":  "video/quicktime",
		"webm": "video/webm",
	},
}

// Object describes one sermon recording about to be stored.
type Object struct {
	SermonID  uint
	Kind      string
	Extension string
}

// NewObject normalises kind and extension (taken from the uploaded file name).
func NewObject(sermonID uint, kind, filename string) Object {
	return Object{
		SermonID:  sermonID,
		Kind:      strings.ToLower(strings.TrimSpace(kind)),
		Extension: normalizeExtension(path.Ext(filename)),
	}
}

func (o Object) Validate() error {
	if o.SermonID == 0 {
		return fmt.Errorf("%w: missing sermon id", ErrUnsupportedMedia)
	}
	exts, ok := allowedExtensions[o.Kind]
	if !ok {
		return fmt.Errorf("%w: kind %q", ErrUnsupportedMedia, o.Kind)
	}
	if _, ok := exts[o.Extension]; !ok {
		return fmt.Errorf("%w: .%s is not %s", ErrUnsupportedMedia, o.Extension, o.Kind)
	}
	return nil
}

// ContentType prefers the fixed media table over the platform mime database.
func (o Object) ContentType() string {
	if ct, ok := allowedExtensions[o.Kind][o.Extension]; ok {
		return ct
	}
	if ct := mime.TypeByExtension("." + o.Extension); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// Key lays objects out as sermons/<id>/<kind>/<yyyy>/<mm>/<nanos>.<ext>.
func (o Object) Key(now time.Time) string {
	now = now.UTC()
	return path.Join(
		"sermons",
		fmt.Sprintf("%d", o.SermonID),
		o.Kind,
		fmt.Sprintf("%04d/%02d", now.Year(), now.Month()),
		fmt.Sprintf("%d.%s", now.UnixNano(), o.Extension),
	)
}

// PublicURL joins the configured public base and an object key.
func PublicURL(base, key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if key == "" {
		return ""
	}
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}

func normalizeExtension(ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	builder := strings.Builder{}
	builder.Grow(len(ext))
	for i := 0; i < len(ext); i++ {
		ch := ext[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		}
	}
	return builder.String()
}

func joinPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(strings.TrimSpace(prefix), "/")
	if cleanPrefix == "" {
		return strings.TrimLeft(key, "/")
	}
	return path.Join(cleanPrefix, strings.TrimLeft(key, "/"))
}
