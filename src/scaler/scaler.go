// Package scaler resizes cover images. Images are decoded from any of the
// supported formats and are always encoded back as JPEG.
package scaler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"runtime"

	// The following are all image formats supported for converting
	// to other image sizes.
	_ "image/gif"
	_ "image/png"

	// Additional image formats from the x repository.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ErrCancelled is returned when one is trying to interact with an stopped
// scaler.
var ErrCancelled = errors.New("scale operation on cancelled Scaler")

// ErrBadWidth is returned for widths which are not positive.
var ErrBadWidth = errors.New("image width must be positive")

// description is a scaling instruction.
type description struct {
	toWidth int
	imgR    io.Reader
	result  chan result
}

type result struct {
	imgData []byte
	err     error
}

// Scaler scales images using a pool of workers, one per CPU.
type Scaler struct {
	cancel context.CancelFunc
	done   <-chan struct{}
	group  *errgroup.Group

	work chan description
}

// New returns a new scaler, ready for use. It is stopped when ctx is done or
// when Cancel is called.
func New(ctx context.Context) *Scaler {
	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)

	s := &Scaler{
		cancel: cancel,
		done:   gctx.Done(),
		group:  g,
		work:   make(chan description),
	}

	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(s.worker)
	}

	return s
}

// Scale converts the image (img) to have width toWidth in pixels while
// preserving its aspect ratio. The result is JPEG encoded.
func (s *Scaler) Scale(
	ctx context.Context,
	img io.Reader,
	toWidth int,
) ([]byte, error) {
	select {
	case <-s.done:
		return nil, ErrCancelled
	default:
	}

	if toWidth <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadWidth, toWidth)
	}

	desc := description{
		imgR:    img,
		toWidth: toWidth,
		result:  make(chan result, 1),
	}

	select {
	case s.work <- desc:
	case <-s.done:
		return nil, ErrCancelled
	case <-ctx.Done():
		return nil, fmt.Errorf("ctx done while waiting to send scale op: %w", ctx.Err())
	}

	select {
	case res := <-desc.result:
		return res.imgData, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel stops the scaler and all of its workers. Users may not use any further
// methods on cancelled scalers.
func (s *Scaler) Cancel() {
	s.cancel()
	_ = s.group.Wait()
}

func (s *Scaler) worker() error {
	for {
		select {
		case desc := <-s.work:
			imgData, err := scaleImage(desc.imgR, desc.toWidth)
			desc.result <- result{
				imgData: imgData,
				err:     err,
			}
		case <-s.done:
			return nil
		}
	}
}

func scaleImage(imgReader io.Reader, toWidth int) ([]byte, error) {
	img, _, err := image.Decode(imgReader)
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	toHeight := toWidth
	imgRect := img.Bounds()
	imgw := imgRect.Dx()
	imgh := imgRect.Dy()
	if imgw != imgh && imgw > 0 {
		toHeight = int((float32(imgh) / float32(imgw)) * float32(toWidth))
	}
	if toHeight < 1 {
		toHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, toWidth, toHeight))

	draw.CatmullRom.Scale(
		dst,
		dst.Bounds(),
		img,
		img.Bounds(),
		draw.Over,
		nil,
	)

	var dstJPEG bytes.Buffer
	if err := jpeg.Encode(&dstJPEG, dst, nil); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	return dstJPEG.Bytes(), nil
}
