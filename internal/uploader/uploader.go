package uploader

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"jobmarket-go/internal/gateway"
	"jobmarket-go/pkg/httpclient"
)

// Buckets images are uploaded to.
const (
	ProfileBucket = "profiles"
	JobBucket     = "jobs"
)

// Uploader pushes images to object storage under deterministic keys and
// returns their public URLs. It is a pure request/response helper with no
// local state to roll back.
type Uploader struct {
	storage gateway.StorageAPI
	remote  *httpclient.HttpClient
	now     func() time.Time
}

// New creates an uploader. remote is used for http(s) image sources and may
// be nil when only local files are expected.
func New(storage gateway.StorageAPI, remote *httpclient.HttpClient) *Uploader {
	return &Uploader{storage: storage, remote: remote, now: time.Now}
}

// UploadProfileImage stores the image under {ownerID}/profile.{ext},
// overwriting any previous profile image, and returns its public URL.
func (u *Uploader) UploadProfileImage(ctx context.Context, ownerID, source string) (string, error) {
	ext := imageExtension(source)
	key := fmt.Sprintf("%s/profile.%s", ownerID, ext)
	return u.upload(ctx, ProfileBucket, key, source, ext)
}

// UploadJobImage stores the image under a fresh timestamped key, so every
// listing image gets a unique key, and returns its public URL.
func (u *Uploader) UploadJobImage(ctx context.Context, ownerID, source string) (string, error) {
	ext := imageExtension(source)
	key := fmt.Sprintf("%s/%d.%s", ownerID, u.now().UnixMilli(), ext)
	return u.upload(ctx, JobBucket, key, source, ext)
}

func (u *Uploader) upload(ctx context.Context, bucket, key, source, ext string) (string, error) {
	data, err := u.readSource(source)
	if err != nil {
		return "", &gateway.UploadError{Err: err}
	}
	if err := u.storage.Upload(ctx, bucket, key, data, "image/"+ext, true); err != nil {
		return "", err
	}
	return u.storage.PublicURL(bucket, key), nil
}

func (u *Uploader) readSource(source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if u.remote == nil {
			return nil, fmt.Errorf("no http client configured for remote image %s", source)
		}
		return u.remote.GetBytes(source)
	}
	return os.ReadFile(source)
}

// imageExtension derives the storage extension from the source path,
// defaulting to jpg.
func imageExtension(source string) string {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(source), "."))
	if ext == "" {
		return "jpg"
	}
	return ext
}
