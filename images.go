package folio

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/eringen/folio/seo"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 80
	imagesSubdir  = "images"
	staticPrefix  = "/static/"
	cardsSubdir   = "og"
)

// staticStats counts what copyStatic did.
type staticStats struct {
	Files   int
	Resized int
}

func isRaster(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

// copyStatic mirrors srcDir into dstDir. Raster images under images/ wider
// than maxImageWidth are scaled down; everything else is copied as is.
// A missing srcDir is not an error.
func copyStatic(srcDir, dstDir string) (staticStats, error) {
	var stats staticStats
	if _, err := os.Stat(srcDir); os.IsNotExist(err) {
		return stats, nil
	}
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dstDir, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if isRaster(path) && strings.HasPrefix(filepath.ToSlash(rel), imagesSubdir+"/") {
			resized, ok, err := resizeImage(data)
			if err != nil {
				return fmt.Errorf("image %s: %w", rel, err)
			}
			if ok {
				data = resized
				stats.Resized++
			}
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
		stats.Files++
		return nil
	})
	return stats, err
}

// resizeImage scales data down to maxImageWidth, keeping the aspect ratio
// and the source format. ok is false when no resize was needed.
func resizeImage(data []byte) (out []byte, ok bool, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= maxImageWidth {
		return nil, false, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	newH := bounds.Dy() * maxImageWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := encodeImage(&buf, dst, format); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}

func encodeImage(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "gif":
		err = gif.Encode(w, img, nil)
	default:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

// SocialCard decodes an image from src and returns a seo.ImageWidth by
// seo.ImageHeight JPEG, cover-cropped around the center.
func SocialCard(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	crop := coverRect(img.Bounds(), seo.ImageWidth, seo.ImageHeight)
	dst := image.NewRGBA(image.Rect(0, 0, seo.ImageWidth, seo.ImageHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// coverRect returns the largest centered sub-rectangle of b with the
// aspect ratio w:h.
func coverRect(b image.Rectangle, w, h int) image.Rectangle {
	sw, sh := b.Dx(), b.Dy()
	if sw*h > sh*w {
		cw := sh * w / h
		x := b.Min.X + (sw-cw)/2
		return image.Rect(x, b.Min.Y, x+cw, b.Max.Y)
	}
	ch := sw * h / w
	y := b.Min.Y + (sh-ch)/2
	return image.Rect(b.Min.X, y, b.Max.X, y+ch)
}

// localImage maps a post image under /static/ to its file in staticDir.
// ok is false for remote or non-raster images.
func localImage(staticDir, ref string) (string, bool) {
	if !strings.HasPrefix(ref, staticPrefix) || !isRaster(ref) {
		return "", false
	}
	rel := filepath.FromSlash(strings.TrimPrefix(ref, staticPrefix))
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return filepath.Join(staticDir, rel), true
}

// writeCard renders the social card for slug from the file at src into
// outDir/og/<slug>.jpg and returns its URL path.
func writeCard(src, outDir, slug string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := SocialCard(f)
	if err != nil {
		return "", fmt.Errorf("card %s: %w", slug, err)
	}
	dir := filepath.Join(outDir, cardsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, slug+".jpg"), data, 0o644); err != nil {
		return "", err
	}
	return "/" + cardsSubdir + "/" + slug + ".jpg", nil
}
