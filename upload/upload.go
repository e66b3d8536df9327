// Package upload reads image files and hands them to the store as photos.
package upload

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/h2non/filetype"

	"github.com/pthm-cable/tinsel/store"
)

var (
	// ErrEmpty is returned for zero-length input.
	ErrEmpty = errors.New("upload: empty file")
	// ErrNotImage is returned when the content is not a recognized image.
	ErrNotImage = errors.New("upload: not an image")
)

// MaxSize caps accepted files.
const MaxSize = 32 << 20

// PhotoAdder receives decoded photos.
type PhotoAdder interface {
	AddPhoto(image string) (store.Photo, error)
}

// EncodeDataURI wraps image bytes in a data URI with the sniffed MIME type.
func EncodeDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	kind, err := filetype.Match(data)
	if err != nil || !filetype.IsImage(data) {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, kind.MIME.Value)
	}
	mime := kind.MIME.Value
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI returns the MIME type and bytes of a base64 data URI.
func DecodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("upload: not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("upload: data URI has no payload")
	}
	mime, isB64 := strings.CutSuffix(meta, ";base64")
	if !isB64 {
		return "", nil, fmt.Errorf("upload: data URI is not base64")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("upload: decoding data URI: %w", err)
	}
	return mime, data, nil
}

// ReadFile loads an image file as a data URI.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > MaxSize {
		return "", fmt.Errorf("reading %s: file is %d bytes, limit %d", path, info.Size(), MaxSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	uri, err := EncodeDataURI(data)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return uri, nil
}

// Importer reads files in the background and adds each as a photo.
type Importer struct {
	sink PhotoAdder
	wg   sync.WaitGroup
}

// NewImporter creates an importer feeding sink.
func NewImporter(sink PhotoAdder) *Importer {
	return &Importer{sink: sink}
}

// Import starts reading paths asynchronously. Unreadable files are logged
// and skipped; each readable image becomes exactly one photo.
func (im *Importer) Import(ctx context.Context, paths ...string) {
	im.wg.Add(1)
	go func() {
		defer im.wg.Done()
		for _, p := range paths {
			if ctx.Err() != nil {
				return
			}
			if _, err := im.importOne(p); err != nil {
				slog.Warn("photo import failed", "path", p, "error", err)
			}
		}
	}()
}

// ImportNow reads one file synchronously.
func (im *Importer) ImportNow(path string) (store.Photo, error) {
	return im.importOne(path)
}

// Wait blocks until all started imports finish.
func (im *Importer) Wait() {
	im.wg.Wait()
}

func (im *Importer) importOne(path string) (store.Photo, error) {
	uri, err := ReadFile(path)
	if err != nil {
		return store.Photo{}, err
	}
	return im.sink.AddPhoto(uri)
}
