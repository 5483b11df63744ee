// Package storage persists uploaded files on the local disk under a
// type-scoped directory layout (uploads/images, uploads/videos,
// uploads/documents) and hands back the relative URL the media records
// store. The web layer serves the directory as static files.
package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bsgholding/cms-backend/internal/model"
)

// Upload describes a stored file: the relative URL to persist, the detected
// media type and the size on disk.
type Upload struct {
	URL      string
	Name     string
	Type     string
	MimeType string
	Size     int64
}

var (
	// ErrTooLarge is returned when the file exceeds the configured ceiling.
	ErrTooLarge = errors.New("file too large")
	// ErrUnsupportedType is returned for MIME types outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Document MIME types accepted next to image/* and video/*.
var documentMimes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true,
}

// ClassifyMime maps a MIME type onto a media type, or fails for types the
// site has no use for.
func ClassifyMime(mime string) (string, error) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch {
	case strings.HasPrefix(mime, "image/"):
		return model.MediaImage, nil
	case strings.HasPrefix(mime, "video/"):
		return model.MediaVideo, nil
	case documentMimes[mime]:
		return model.MediaDocument, nil
	}
	return "", ErrUnsupportedType
}

// LocalStore writes uploads below Dir and enforces the size ceiling.
type LocalStore struct {
	Dir      string
	MaxBytes int64
}

func NewLocalStore(dir string, maxBytes int64) *LocalStore {
	return &LocalStore{Dir: dir, MaxBytes: maxBytes}
}

// subdir returns the directory name for a media type.
func subdir(mediaType string) string {
	switch mediaType {
	case model.MediaImage:
		return "images"
	case model.MediaVideo:
		return "videos"
	default:
		return "documents"
	}
}

// Save stores one multipart file under a randomized name and returns its
// metadata. The original filename survives only in its extension and in the
// Name field for display.
func (s *LocalStore) Save(fh *multipart.FileHeader) (Upload, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return Upload{}, ErrTooLarge
	}
	mime := fh.Header.Get("Content-Type")
	mediaType, err := ClassifyMime(mime)
	if err != nil {
		return Upload{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return Upload{}, err
	}
	defer src.Close()

	dir := filepath.Join(s.Dir, subdir(mediaType))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Upload{}, err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return Upload{}, err
	}
	defer dst.Close()

	// Copy with a hard limit one byte past the ceiling so an understated
	// Content-Length cannot smuggle an oversized body in.
	var written int64
	if s.MaxBytes > 0 {
		written, err = io.Copy(dst, io.LimitReader(src, s.MaxBytes+1))
		if err == nil && written > s.MaxBytes {
			err = ErrTooLarge
		}
	} else {
		written, err = io.Copy(dst, src)
	}
	if err != nil {
		_ = os.Remove(dstPath)
		return Upload{}, err
	}

	return Upload{
		URL:      path.Join("/uploads", subdir(mediaType), name),
		Name:     fh.Filename,
		Type:     mediaType,
		MimeType: mime,
		Size:     written,
	}, nil
}

// Delete removes the file behind a stored /uploads URL. The path is
// resolved against Dir and confined to it, so a crafted URL cannot reach
// outside the uploads tree. Missing files are not an error.
func (s *LocalStore) Delete(url string) error {
	rel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(url, "/uploads/")), "/")
	if rel == "" || rel == "." || strings.HasPrefix(rel, "..") {
		return errors.New("invalid upload url")
	}
	full := filepath.Join(s.Dir, filepath.FromSlash(rel))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
