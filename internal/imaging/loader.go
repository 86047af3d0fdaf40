package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/anthonynsimon/bild/clone"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageInfo summarizes a generated image.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognized the bytes, e.g. "png" or "jpeg".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"colorDepth"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"hasAlpha"`

	// AverageColor is the mean color over all pixels as "#rrggbb".
	AverageColor string `json:"averageColor"`

	// SizeBytes is the length of the encoded image.
	SizeBytes int `json:"sizeBytes"`
}

// Decode decodes image bytes in any registered format (PNG, JPEG, GIF, WebP,
// plus the BMP and TIFF decoders pulled in by disintegration/imaging) and
// returns the image with its format name.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Describe decodes data and reports its dimensions, format and average color.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func Describe(data []byte) (*ImageInfo, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		Format:       format,
		ColorDepth:   colorDepth,
		HasAlpha:     hasAlpha,
		AverageColor: AverageColor(img).Hex(),
		SizeBytes:    len(data),
	}, nil
}

// AverageColor returns the mean of all pixels, ignoring alpha.
// An empty image averages to black.
func AverageColor(img image.Image) colorful.Color {
	rgba := clone.AsRGBA(img)

	var r, g, b uint64
	pix := rgba.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r += uint64(pix[i])
		g += uint64(pix[i+1])
		b += uint64(pix[i+2])
	}

	n := uint64(len(pix) / 4)
	if n == 0 {
		return colorful.Color{}
	}
	return colorful.Color{
		R: float64(r/n) / 255,
		G: float64(g/n) / 255,
		B: float64(b/n) / 255,
	}
}
