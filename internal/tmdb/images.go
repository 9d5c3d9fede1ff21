package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
)

// Image sizes used for rendering.
const (
	PosterSize  = "w500"
	ProfileSize = "w185"
	LogoSize    = "w92"
)

// ImageURL constructs the full image URL for a TMDB image path at the given size.
// An empty path yields an empty URL.
func (c *Client) ImageURL(size, imagePath string) string {
	if imagePath == "" {
		return ""
	}
	if size == "" {
		size = "original"
	}
	return fmt.Sprintf("%s/%s/%s", c.imageBaseURL, size, strings.TrimPrefix(imagePath, "/"))
}

// DownloadPoster fetches the poster of a title and stores it at savePath,
// resized to maxWidth.
func (c *Client) DownloadPoster(ctx context.Context, id int, mediaType, savePath string, maxWidth int) error {
	details, err := c.GetTitle(ctx, id, mediaType)
	if err != nil {
		return err
	}
	if details.PosterPath == "" {
		return ErrNoPoster
	}
	return c.DownloadAndResizeImage(ctx, c.ImageURL("original", details.PosterPath), savePath, maxWidth)
}

// DownloadAndResizeImage downloads an image and resizes it to the specified width.
func (c *Client) DownloadAndResizeImage(ctx context.Context, imageURL, savePath string, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewProviderUnavailableError(providerName, "image download", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewProviderUnavailableError(providerName, "image download", resp.StatusCode,
			fmt.Errorf("unexpected status %d downloading image", resp.StatusCode))
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	width := img.Bounds().Dx()
	if width > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return err
	}

	return imaging.Save(img, savePath, imaging.JPEGQuality(85))
}
