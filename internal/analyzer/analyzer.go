// Package analyzer owns the capture→encode→request→extract pipeline for one
// automation cycle.
package analyzer

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"math"

	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/mj1618/screenpilot/internal/config"
	"github.com/mj1618/screenpilot/internal/extract"
	"github.com/mj1618/screenpilot/internal/llm"
	"github.com/mj1618/screenpilot/internal/model"
	"github.com/mj1618/screenpilot/internal/platform"
)

// Client runs one perception cycle: grab a frame, shrink and JPEG-encode it,
// send it to the inference service, parse the reply.
type Client struct {
	capturer platform.Capturer
	service  llm.Client
	maxDim   int
	quality  int
	logger   *zap.Logger
}

// New creates an analysis client.
func New(capturer platform.Capturer, service llm.Client, cfg config.CaptureConfig, logger *zap.Logger) *Client {
	return &Client{
		capturer: capturer,
		service:  service,
		maxDim:   cfg.MaxDimension,
		quality:  cfg.JPEGQuality,
		logger:   logger,
	}
}

// RunCycle performs one full cycle. Failures come back as *CycleError tagged
// with the stage that failed; they are never fatal to the caller's loop.
func (c *Client) RunCycle(ctx context.Context) (*model.Analysis, error) {
	frame, err := c.capturer.CaptureScreen()
	if err != nil {
		return nil, &CycleError{Stage: StageCapture, Err: err}
	}

	encoded, err := encodeFrame(frame, c.maxDim, c.quality)
	if err != nil {
		return nil, &CycleError{Stage: StageCapture, Err: err}
	}
	c.logger.Debug("frame encoded",
		zap.Int("width", frame.Bounds().Dx()),
		zap.Int("height", frame.Bounds().Dy()),
		zap.Int("jpeg_bytes", len(encoded)))

	raw, err := c.service.Complete(ctx, analysisPrompt, encoded)
	if err != nil {
		return nil, &CycleError{Stage: StageTransport, Err: err}
	}
	c.logger.Debug("model replied", zap.String("raw", raw))

	analysis, err := extract.Extract(raw)
	if err != nil {
		return nil, &CycleError{Stage: StageParse, Err: err, Raw: raw}
	}
	return analysis, nil
}

// encodeFrame downscales the frame so neither dimension exceeds maxDim
// (aspect ratio preserved) and JPEG-encodes it.
func encodeFrame(frame *image.RGBA, maxDim, quality int) ([]byte, error) {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()

	var src image.Image = frame
	if w > maxDim || h > maxDim {
		scale := float64(maxDim) / float64(max(w, h))
		nw := max(1, int(math.Round(float64(w)*scale)))
		nh := max(1, int(math.Round(float64(h)*scale)))
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), frame, b, xdraw.Src, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
