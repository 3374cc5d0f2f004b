package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"net/http"
	"path"
	"strings"

	"github.com/neimd2025/web-ndrop-sub000/core/constants"
	"github.com/neimd2025/web-ndrop-sub000/core/utils"

	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	_ "golang.org/x/image/webp"
)

// ErrInvalidImage wraps every rejection of the uploaded bytes themselves.
var ErrInvalidImage = errors.New("invalid image")

var allowedImageTypes = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.GIF,
	"image/webp": imaging.JPEG,
}

// ImageUploader bounds, re-encodes and stores images.
type ImageUploader struct {
	store ObjectStorage
}

func NewImageUploader(store ObjectStorage) *ImageUploader {
	return &ImageUploader{store: store}
}

type UploadedImage struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Upload stores data under folder/<slug(name)>-<id>.<ext>.
func (u *ImageUploader) Upload(ctx context.Context, folder, filename string, data []byte) (*UploadedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if len(data) > constants.MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, constants.MaxUploadSize)
	}

	detected := http.DetectContentType(data)
	format, ok := allowedImageTypes[detected]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidImage, err)
	}
	img = imaging.Fit(img, constants.MaxImageDimension, constants.MaxImageDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	ext, contentType := "jpg", "image/jpeg"
	switch format {
	case imaging.PNG:
		ext, contentType = "png", "image/png"
	case imaging.GIF:
		ext, contentType = "gif", "image/gif"
	}

	key := ObjectKey(folder, filename, ext)
	url, err := u.store.Put(ctx, key, contentType, buf.Bytes())
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &UploadedImage{
		URL:         url,
		Key:         key,
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// ObjectKey builds a collision resistant, URL safe object key.
func ObjectKey(folder, filename, ext string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	name := slug.Make(base)
	if name == "" {
		name = "image"
	}
	folder = slug.Make(folder)
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%s-%s.%s", folder, name, utils.GenerateID(), ext)
}
