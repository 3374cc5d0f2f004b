package storage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = body
	return "https://cdn.test/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImageUploaderBoundsLargeImages(t *testing.T) {
	store := &memoryStorage{}
	u := NewImageUploader(store)

	got, err := u.Upload(context.Background(), "events", "Summer Meetup.png", pngBytes(t, 3200, 800))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if got.Width != 1600 || got.Height != 400 {
		t.Errorf("size = %dx%d, want 1600x400", got.Width, got.Height)
	}
	if !strings.HasPrefix(got.Key, "events/summer-meetup-") || !strings.HasSuffix(got.Key, ".png") {
		t.Errorf("key = %q", got.Key)
	}
	if _, ok := store.objects[got.Key]; !ok {
		t.Error("object was not stored")
	}
}

func TestImageUploaderRejectsNonImages(t *testing.T) {
	u := NewImageUploader(&memoryStorage{})
	_, err := u.Upload(context.Background(), "events", "notes.txt", []byte("hello world"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("Upload() error = %v, want ErrInvalidImage", err)
	}
}

func TestObjectKeyFallbacks(t *testing.T) {
	key := ObjectKey("", "???.jpg", "jpg")
	if !strings.HasPrefix(key, "uploads/image-") {
		t.Errorf("ObjectKey() = %q", key)
	}
}
