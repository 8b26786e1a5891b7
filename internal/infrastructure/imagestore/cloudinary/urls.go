package cloudinary

import "fmt"

// TransformOptions shape the delivery URL for a stored image. Zero
// values fall back to a 400x400 fill with automatic quality and format.
type TransformOptions struct {
	Width   int
	Height  int
	Crop    string
	Quality string
	Format  string
}

// OptimizedURL builds a delivery URL with the given transformation.
func (c *Client) OptimizedURL(publicID string, options TransformOptions) string {
	if options.Width == 0 {
		options.Width = 400
	}
	if options.Height == 0 {
		options.Height = 400
	}
	if options.Crop == "" {
		options.Crop = "fill"
	}
	if options.Quality == "" {
		options.Quality = "auto"
	}
	if options.Format == "" {
		options.Format = "auto"
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/w_%d,h_%d,c_%s,q_%s,f_%s/%s",
		c.cloudName, options.Width, options.Height, options.Crop, options.Quality, options.Format, publicID)
}

// ThumbnailURL is the 200x200 low-quality thumb used by list views.
func (c *Client) ThumbnailURL(publicID string) string {
	return c.OptimizedURL(publicID, TransformOptions{
		Width:   200,
		Height:  200,
		Crop:    "thumb",
		Quality: "auto:low",
	})
}
