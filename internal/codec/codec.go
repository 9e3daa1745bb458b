// Package codec wraps pixel decode, resampling, and re-encode behind a
// capability interface so the batch pipeline never touches image bytes
// directly.
package codec

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Quality is the fixed encode quality passed on every lossy encode.
const Quality = 90

var (
	ErrDecode = errors.New("image decode failed")
	ErrEncode = errors.New("image encode failed")
)

// ImageProcessor is the codec capability consumed by resize tasks.
// Resize scales to the exact pixel dimensions given; aspect ratio is not
// preserved.
type ImageProcessor interface {
	Decode(r io.Reader) (image.Image, error)
	Resize(img image.Image, width, height int) image.Image
	Encode(w io.Writer, img image.Image, ext string) error
}

// LanczosProcessor implements ImageProcessor on disintegration/imaging
// with a fixed Lanczos resampling filter.
type LanczosProcessor struct{}

func (LanczosProcessor) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

func (LanczosProcessor) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Encode writes img in the format named by ext (with or without the
// leading dot) at the fixed quality setting.
func (LanczosProcessor) Encode(w io.Writer, img image.Image, ext string) error {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, ext, err)
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(Quality)); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
