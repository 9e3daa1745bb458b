package batch

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"squish/internal/codec"
	"squish/internal/naming"
	"squish/internal/validate"
)

var testExtensions = []string{"png", "jpg", "gif", "jpeg"}

func newTestRunner(workers int) *Runner {
	return NewRunner(validate.New(testExtensions), codec.LanczosProcessor{}, workers)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 0xff, A: 0xff})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return img
}

func TestRunExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0, 3)
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		path := filepath.Join(dir, name)
		writePNG(t, path, 30, 30)
		paths = append(paths, path)
	}

	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Paths:  paths,
		Width:  10,
		Height: 15,
		Policy: naming.OverrideExisting,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outcomes) != len(paths) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(paths))
	}

	for i, out := range outcomes {
		if out.Source != paths[i] {
			t.Errorf("outcome %d source = %q, want %q (input order)", i, out.Source, paths[i])
		}
		if !out.Succeeded {
			t.Errorf("outcome %d failed: %v", i, out.Err)
			continue
		}
		img := decodePNG(t, out.Destination)
		if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 15 {
			t.Errorf("output %s is %dx%d, want 10x15",
				out.Destination, img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
}

func TestRunDirectoryScan(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 20, 20)
	writePNG(t, filepath.Join(dir, "b.png"), 20, 20)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Dir:        dir,
		Width:      8,
		Height:     8,
		Policy:     naming.OverrideExisting,
		Extensions: testExtensions,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	for _, out := range outcomes {
		if !out.Succeeded {
			t.Errorf("%s failed: %v", out.Source, out.Err)
		}
	}
}

func TestRunArgumentShape(t *testing.T) {
	r := newTestRunner(0)

	_, err := r.Run(context.Background(), Options{
		Paths: []string{"a.png"}, Dir: "images", Width: 10, Height: 10,
	})
	if !errors.Is(err, validate.ErrMutualExclusion) {
		t.Errorf("expected ErrMutualExclusion, got: %v", err)
	}

	_, err = r.Run(context.Background(), Options{Width: 10, Height: 10})
	if !errors.Is(err, validate.ErrMissingPath) {
		t.Errorf("expected ErrMissingPath, got: %v", err)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Dir:        t.TempDir(),
		Width:      10,
		Height:     10,
		Policy:     naming.OverrideExisting,
		Extensions: testExtensions,
	})
	if err != nil {
		t.Fatalf("empty batch must not fail: %v", err)
	}
	if len(outcomes) != 0 {
		t.Fatalf("expected zero outcomes, got %d", len(outcomes))
	}
}

func TestRunFailureIsolation(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "good1.png")
	corrupt := filepath.Join(dir, "corrupt.png")
	good2 := filepath.Join(dir, "good2.png")
	writePNG(t, good1, 16, 16)
	writePNG(t, good2, 16, 16)
	if err := os.WriteFile(corrupt, []byte("not a png at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Paths:  []string{good1, corrupt, good2},
		Width:  4,
		Height: 4,
		Policy: naming.OverrideExisting,
	})
	if err != nil {
		t.Fatalf("per-file failures must not fail the batch: %v", err)
	}

	if !outcomes[0].Succeeded || !outcomes[2].Succeeded {
		t.Errorf("valid files must succeed despite a corrupt sibling: %+v", outcomes)
	}
	if outcomes[1].Succeeded {
		t.Error("corrupt file must fail")
	}
	if outcomes[1].Kind != KindDecode {
		t.Errorf("corrupt file kind = %q, want %q", outcomes[1].Kind, KindDecode)
	}
}

func TestRunSkipExistingPerformsNoWrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writePNG(t, src, 16, 16)

	existing := filepath.Join(dir, "resized_a.png")
	sentinel := []byte("pre-existing output")
	if err := os.WriteFile(existing, sentinel, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Paths:  []string{src},
		Width:  4,
		Height: 4,
		Policy: naming.SkipExisting,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	out := outcomes[0]
	if !out.Succeeded || !out.Skipped {
		t.Fatalf("expected skipped success, got %+v", out)
	}
	if out.Destination != existing {
		t.Fatalf("destination = %q, want %q", out.Destination, existing)
	}
	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, sentinel) {
		t.Fatal("skip policy must leave the existing file untouched")
	}
}

func TestRunOverrideIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writePNG(t, src, 16, 16)

	opts := Options{
		Paths:  []string{src},
		Width:  6,
		Height: 6,
		Policy: naming.OverrideExisting,
	}

	first, err := newTestRunner(0).Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := newTestRunner(0).Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first[0].Destination != second[0].Destination {
		t.Fatalf("override must reuse the destination: %q vs %q",
			first[0].Destination, second[0].Destination)
	}
	if !second[0].Succeeded || second[0].Skipped {
		t.Fatalf("second run must overwrite, got %+v", second[0])
	}
}

func TestRunUniqueSuffix(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writePNG(t, src, 16, 16)

	existing := filepath.Join(dir, "resized_a.png")
	if err := os.WriteFile(existing, []byte("taken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Paths:  []string{src},
		Width:  4,
		Height: 4,
		Policy: naming.UniqueSuffix,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	out := outcomes[0]
	if !out.Succeeded {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	pattern := regexp.MustCompile(`^resized_a-[0-9a-f]{32}\.png$`)
	if base := filepath.Base(out.Destination); !pattern.MatchString(base) {
		t.Fatalf("unexpected destination name: %q", base)
	}
	if _, err := os.Stat(out.Destination); err != nil {
		t.Fatalf("destination not written: %v", err)
	}
}

func TestRunFormatConversion(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	writePNG(t, src, 16, 16)

	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Paths:  []string{src},
		Width:  4,
		Height: 4,
		Format: "jpg",
		Policy: naming.OverrideExisting,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	out := outcomes[0]
	if !out.Succeeded {
		t.Fatalf("unexpected failure: %v", out.Err)
	}
	if want := filepath.Join(dir, "resized_a.jpg"); out.Destination != want {
		t.Fatalf("destination = %q, want %q", out.Destination, want)
	}
	data, err := os.ReadFile(out.Destination)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// JPEG SOI marker.
	if len(data) < 2 || data[0] != 0xff || data[1] != 0xd8 {
		t.Fatal("output is not a JPEG")
	}
}

func TestRunBoundedWorkers(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		path := filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, path, 12, 12)
		paths = append(paths, path)
	}

	outcomes, err := newTestRunner(2).Run(context.Background(), Options{
		Paths:  paths,
		Width:  5,
		Height: 5,
		Policy: naming.OverrideExisting,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outcomes) != len(paths) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(paths))
	}
	for _, out := range outcomes {
		if !out.Succeeded {
			t.Errorf("%s failed: %v", out.Source, out.Err)
		}
	}
}

func TestRunValidationFailureRecorded(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.png")
	wrongType := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(wrongType, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outcomes, err := newTestRunner(0).Run(context.Background(), Options{
		Paths:  []string{missing, wrongType},
		Width:  4,
		Height: 4,
		Policy: naming.OverrideExisting,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcomes[0].Kind != KindNotFound {
		t.Errorf("missing file kind = %q, want %q", outcomes[0].Kind, KindNotFound)
	}
	if outcomes[1].Kind != KindUnsupportedType {
		t.Errorf("wrong type kind = %q, want %q", outcomes[1].Kind, KindUnsupportedType)
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []ResizeOutcome{
		{Succeeded: true},
		{Succeeded: true, Skipped: true},
		{Kind: KindDecode},
	}
	s := Summarize(outcomes)
	if s.Total != 3 || s.Resized != 1 || s.Skipped != 1 || s.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
