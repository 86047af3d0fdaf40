package imaging

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// NormalizePNG returns data encoded as PNG along with the format it arrived in.
//
// PNG input is returned unchanged so the provider's bytes are saved exactly.
// Any other decodable format is re-encoded; EXIF orientation is applied first.
func NormalizePNG(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image data")
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unrecognized image data: %w", err)
	}
	if format == "png" {
		return data, format, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode %s image: %w", format, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, format, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), format, nil
}
