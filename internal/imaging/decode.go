package imaging

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders for format sniffing via image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/orhun/manga-tui/internal/debuglog"
)

// Decode sniffs the format of raw cover bytes and decodes them into a
// raster image.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	debuglog.Debugf("decoded %s image %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())
	return img, nil
}
