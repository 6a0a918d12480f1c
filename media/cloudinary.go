package media

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"unify/models"
)

// Host is the media-host boundary: upload a binary, get back a public URL
// plus a deletion handle; delete by handle when the owning entity goes away.
type Host interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID string) (*models.Image, error)
	Delete(ctx context.Context, publicID string) error
}

// Cloudinary implements Host against the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds a client from a CLOUDINARY_URL-style connection string.
func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, folder, publicID string) (*models.Image, error) {
	result, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		Transformation: "c_limit,w_800,h_800,q_auto",
	})
	if err != nil {
		return nil, err
	}
	return &models.Image{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
