package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores a binary file with a third party and returns a public URL
// for it.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string) (string, error)
}

// Cloudinary uploads files to a Cloudinary media library.
type Cloudinary struct {
	client *cloudinary.Cloudinary
}

// NewCloudinary builds an uploader from a cloudinary:// credentials URL.
func NewCloudinary(cloudinaryURL string) (*Cloudinary, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: configure: %w", err)
	}
	return &Cloudinary{client: client}, nil
}

// Upload sends the file and returns its public HTTPS URL. The call blocks
// for the duration of the upload.
func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, filename string) (string, error) {
	res, err := c.client.Upload.Upload(ctx, file, uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("cloudinary: upload %s: %w", filename, err)
	}
	return res.SecureURL, nil
}
