package uploader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobmarket-go/internal/gateway"
)

type upload struct {
	bucket      string
	key         string
	data        []byte
	contentType string
	overwrite   bool
}

type fakeStorage struct {
	uploads   []upload
	uploadErr error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string, overwrite bool) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, upload{bucket, key, data, contentType, overwrite})
	return nil
}

func (f *fakeStorage) PublicURL(bucket, key string) string {
	return "https://cdn.example.com/" + bucket + "/" + key
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("image-bytes"), 0600); err != nil {
		t.Fatalf("write image: %v", err)
	}
	return path
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestUploadProfileImage_DeterministicOverwritingKey(t *testing.T) {
	storage := &fakeStorage{}
	u := New(storage, nil)

	url, err := u.UploadProfileImage(context.Background(), "u1", writeImage(t, "me.PNG"))
	if err != nil {
		t.Fatalf("UploadProfileImage() error: %v", err)
	}

	if len(storage.uploads) != 1 {
		t.Fatalf("got %d uploads, want 1", len(storage.uploads))
	}
	up := storage.uploads[0]
	if up.bucket != ProfileBucket {
		t.Errorf("bucket = %s, want %s", up.bucket, ProfileBucket)
	}
	if up.key != "u1/profile.png" {
		t.Errorf("key = %s, want u1/profile.png", up.key)
	}
	if up.contentType != "image/png" {
		t.Errorf("contentType = %s, want image/png", up.contentType)
	}
	if !up.overwrite {
		t.Error("profile images must overwrite the previous one")
	}
	if url != "https://cdn.example.com/profiles/u1/profile.png" {
		t.Errorf("url = %s", url)
	}
}

func TestUploadJobImage_UniqueTimestampedKeys(t *testing.T) {
	storage := &fakeStorage{}
	u := New(storage, nil)
	path := writeImage(t, "job.jpg")

	u.now = fixedClock(time.UnixMilli(1756600000000))
	if _, err := u.UploadJobImage(context.Background(), "u1", path); err != nil {
		t.Fatalf("UploadJobImage() error: %v", err)
	}
	u.now = fixedClock(time.UnixMilli(1756600000001))
	if _, err := u.UploadJobImage(context.Background(), "u1", path); err != nil {
		t.Fatalf("UploadJobImage() error: %v", err)
	}

	if len(storage.uploads) != 2 {
		t.Fatalf("got %d uploads, want 2", len(storage.uploads))
	}
	first, second := storage.uploads[0], storage.uploads[1]
	if first.bucket != JobBucket {
		t.Errorf("bucket = %s, want %s", first.bucket, JobBucket)
	}
	if first.key != "u1/1756600000000.jpg" {
		t.Errorf("key = %s, want u1/1756600000000.jpg", first.key)
	}
	if first.key == second.key {
		t.Error("consecutive job images must get distinct keys")
	}
}

func TestImageExtension(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"/tmp/photo.jpg", "jpg"},
		{"/tmp/photo.JPEG", "jpeg"},
		{"/tmp/noext", "jpg"},
		{"https://example.com/pic.png?width=300", "png"},
		{"https://example.com/pic.webp#section", "webp"},
	}
	for _, tt := range tests {
		if got := imageExtension(tt.source); got != tt.want {
			t.Errorf("imageExtension(%s) = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestUpload_MissingFileIsUploadError(t *testing.T) {
	u := New(&fakeStorage{}, nil)

	_, err := u.UploadJobImage(context.Background(), "u1", "/does/not/exist.jpg")
	var upErr *gateway.UploadError
	if !errors.As(err, &upErr) {
		t.Errorf("UploadJobImage(missing file) = %v, want UploadError", err)
	}
}

func TestUpload_StorageFailurePropagates(t *testing.T) {
	storage := &fakeStorage{uploadErr: &gateway.UploadError{Err: errors.New("quota exceeded")}}
	u := New(storage, nil)

	_, err := u.UploadProfileImage(context.Background(), "u1", writeImage(t, "me.jpg"))
	var upErr *gateway.UploadError
	if !errors.As(err, &upErr) {
		t.Errorf("UploadProfileImage() = %v, want UploadError", err)
	}
}

func TestUpload_RemoteSourceWithoutClientFails(t *testing.T) {
	u := New(&fakeStorage{}, nil)

	_, err := u.UploadJobImage(context.Background(), "u1", "https://example.com/pic.jpg")
	var upErr *gateway.UploadError
	if !errors.As(err, &upErr) {
		t.Errorf("remote source without http client = %v, want UploadError", err)
	}
}
