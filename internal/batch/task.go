package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"squish/internal/codec"
	"squish/internal/naming"
	"squish/pkg/imgutil"
)

// runTask resizes one image. Every failure is caught here and recorded in
// the outcome; nothing propagates to sibling tasks or the orchestrator.
func (r *Runner) runTask(req ResizeRequest, policy naming.Policy) ResizeOutcome {
	out := ResizeOutcome{Source: req.Source}

	// The file may have changed between discovery and task start.
	if err := r.validator.ValidateFile(req.Source); err != nil {
		return fail(out, err)
	}

	f, err := os.Open(req.Source)
	if err != nil {
		return fail(out, fmt.Errorf("%w: %v", codec.ErrDecode, err))
	}
	img, err := r.processor.Decode(f)
	f.Close()
	if err != nil {
		if content, sniffErr := imgutil.Sniff(req.Source); sniffErr == nil {
			log.Debug().
				Str("path", req.Source).
				Str("content_type", content).
				Msg("decode failed, content does not match extension")
		}
		return fail(out, err)
	}

	resized := r.processor.Resize(img, req.Width, req.Height)

	dest, skip := naming.OutputPath(req.Source, req.Format, policy)
	out.Destination = dest
	if skip {
		log.Debug().Str("path", dest).Msg("duplicate resized image found, keeping existing output")
		out.Succeeded = true
		out.Skipped = true
		return out
	}

	var buf bytes.Buffer
	if err := r.processor.Encode(&buf, resized, filepath.Ext(dest)); err != nil {
		return fail(out, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fail(out, fmt.Errorf("%w: %v", ErrWrite, err))
	}

	log.Info().
		Str("source", filepath.Base(req.Source)).
		Int("width", req.Width).
		Int("height", req.Height).
		Str("saved_at", dest).
		Msg("resized image")
	out.Succeeded = true
	return out
}

func fail(out ResizeOutcome, err error) ResizeOutcome {
	out.Err = err
	out.Kind = Classify(err)
	log.Error().Str("source", out.Source).Err(err).Msg("image resizing failed")
	return out
}
