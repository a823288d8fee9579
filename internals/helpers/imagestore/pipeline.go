package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Per-file pipeline: format check -> size check -> (optional square crop)
// -> staged to a temp file -> uploaded -> staged file removed. The staged
// file is removed on every exit path.

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
	FormatWEBP = "webp"
)

// RejectError is a user-correctable, per-file failure (bad format or too
// large). It names the offending file so multi-file submissions stay legible.
type RejectError struct {
	File   string
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// DetectFormat sniffs the header bytes. Only JPEG, PNG, GIF and WEBP pass.
func DetectFormat(data []byte) (string, error) {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	switch http.DetectContentType(head) {
	case "image/jpeg":
		return FormatJPEG, nil
	case "image/png":
		return FormatPNG, nil
	case "image/gif":
		return FormatGIF, nil
	case "image/webp":
		return FormatWEBP, nil
	}
	return "", fmt.Errorf("unsupported image format")
}

// Check runs the format and size gates and reports rejections per file.
func Check(filename string, data []byte, maxBytes int64) (string, error) {
	format, err := DetectFormat(data)
	if err != nil {
		return "", &RejectError{File: filename, Reason: "unsupported image format (use JPEG, PNG, GIF or WEBP)"}
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", &RejectError{
			File:   filename,
			Reason: fmt.Sprintf("file exceeds the %d MB limit", maxBytes/(1024*1024)),
		}
	}
	return format, nil
}

// SquareCrop center-crops to 1:1 on the shorter side, resizes to size×size
// with Lanczos, and re-encodes in the detected format.
func SquareCrop(data []byte, format string, size int) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	if format == FormatWEBP {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, err = imaging.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	img = imaging.CropAnchor(img, side, side, imaging.Center)
	img = imaging.Resize(img, size, size, imaging.Lanczos)

	buf := &bytes.Buffer{}
	switch format {
	case FormatJPEG:
		err = imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(90))
	case FormatPNG:
		err = imaging.Encode(buf, img, imaging.PNG)
	case FormatGIF:
		err = imaging.Encode(buf, img, imaging.GIF)
	case FormatWEBP:
		err = webp.Encode(buf, img, &webp.Options{Quality: 90})
	default:
		err = fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Stage writes the bytes to a private temp file so the store can read from a
// file handle. The returned cleanup must run on every exit path.
func Stage(data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "eventhub-upload-*")
	if err != nil {
		return "", nil, fmt.Errorf("stage image: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, fmt.Errorf("stage image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("stage image: %w", err)
	}
	return path, cleanup, nil
}

type ProcessOptions struct {
	MaxBytes int64
	// Square crops to 1:1 and resizes to SquareSize before upload (avatars).
	Square     bool
	SquareSize int
}

// Process runs one file through the whole pipeline and returns the issued
// CDN file. Rejections come back as *RejectError before any network call.
func Process(ctx context.Context, store Store, filename string, data []byte, opt ProcessOptions) (UploadedFile, error) {
	format, err := Check(filename, data, opt.MaxBytes)
	if err != nil {
		return UploadedFile{}, err
	}

	if opt.Square {
		size := opt.SquareSize
		if size <= 0 {
			size = 512
		}
		if data, err = SquareCrop(data, format, size); err != nil {
			return UploadedFile{}, err
		}
	}

	path, cleanup, err := Stage(data)
	if err != nil {
		return UploadedFile{}, err
	}
	defer cleanup()

	f, err := os.Open(path)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("open staged image: %w", err)
	}
	defer f.Close()

	return store.Upload(ctx, filename, f)
}
