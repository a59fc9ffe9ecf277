package thumbs

import (
	"fmt"
	"image"
	"os"

	"image-browser/internal/logging"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Decoder turns an image file into an in-memory image no larger than
// the given bounds. Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(path string, maxWidth, maxHeight int) (image.Image, error)
}

// DefaultDecoder decodes through libvips when available and falls back
// to pure-Go decoding otherwise. The fallback chain mirrors the formats
// registered above: jpeg, png, gif, and webp.
type DefaultDecoder struct{}

// Decode implements Decoder.
func (DefaultDecoder) Decode(path string, maxWidth, maxHeight int) (image.Image, error) {
	if IsVipsAvailable() {
		img, err := loadImageWithVips(path, maxWidth, maxHeight)
		if err == nil {
			return img, nil
		}
		logging.Debug("vips decode failed for %s: %v, falling back", path, err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	logging.Debug("imaging.Open failed for %s: %v, trying stdlib decode", path, err)

	img, err = decodeImageFile(path)
	if err != nil {
		return nil, fmt.Errorf("all decode methods failed for %s: %w", path, err)
	}
	return img, nil
}

func decodeImageFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	logging.Debug("decoded %s as %s", path, format)
	return img, nil
}
