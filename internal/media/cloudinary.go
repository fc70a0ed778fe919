// Package media stores event banner and gallery images in Cloudinary.
// The core never depends on the SDK directly; handlers and tests use the
// Uploader contract ("store blob, get URL").
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the object-storage boundary.
type Uploader interface {
	Upload(ctx context.Context, folder string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// Folders used for event media.
const (
	FolderBanners = "banhchi/banners"
	FolderGallery = "banhchi/gallery"
)

const uploadTimeout = 60 * time.Second

// CloudinaryUploader implements Uploader against the Cloudinary API.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("media: cloudinary config: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, folder string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	resp, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("media: upload: %w", err)
	}
	return resp.SecureURL, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicURL string) error {
	publicID, err := extractPublicID(publicURL)
	if err != nil {
		return fmt.Errorf("media: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("media: delete: %w", err)
	}
	return nil
}

// extractPublicID recovers the Cloudinary public id from a delivery URL,
// e.g. https://res.cloudinary.com/demo/image/upload/v123/banhchi/banners/abc.jpg
// -> banhchi/banners/abc.
func extractPublicID(publicURL string) (string, error) {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", err
	}

	parts := strings.Split(strings.TrimPrefix(parsed.Path, "/"), "/")
	// <cloud>/<asset_type>/upload/[v<version>/]<public_id>.<ext>
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx+1 >= len(parts) {
		return "", fmt.Errorf("unrecognized cloudinary URL %q", publicURL)
	}

	rest := parts[uploadIdx+1:]
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		rest = rest[1:]
	}
	id := path.Join(rest...)
	return strings.TrimSuffix(id, path.Ext(id)), nil
}
