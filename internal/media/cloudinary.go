package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/noah-isme/edupay-api/pkg/config"
)

// UploadResult describes an asset stored on the media host.
type UploadResult struct {
	URL      string
	PublicID string
	Bytes    int64
}

// Host wraps the external media host. The host owns the binary assets;
// this backend only keeps their metadata.
type Host struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewHost constructs a media host client from the configured credentials.
func NewHost(cfg config.MediaConfig) (*Host, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("media host credentials missing")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init media host: %w", err)
	}
	return &Host{cld: cld, folder: cfg.Folder}, nil
}

// Upload stores the asset remotely and returns its retrieval URL and
// storage locator.
func (h *Host) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	resp, err := h.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       h.folder,
		ResourceType: "auto",
		UseFilename:  api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("upload asset %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("upload asset %s: %s", filename, resp.Error.Message)
	}
	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Bytes:    int64(resp.Bytes),
	}, nil
}

// Destroy removes the remote asset. A missing asset is not an error.
func (h *Host) Destroy(ctx context.Context, publicID string) error {
	resp, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy asset %s: %w", publicID, err)
	}
	if resp != nil && resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("destroy asset %s: %s", publicID, resp.Result)
	}
	return nil
}
