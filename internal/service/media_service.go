package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vitrine/internal/config"
	"vitrine/internal/models"
	"vitrine/internal/observability"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
	_ "image/gif"
	_ "image/png"
)

const (
	jpegQuality = 82
	webpQuality = 70
)

// MediaService stores uploaded feed media on local disk. Images are
// re-encoded and capped at a maximum dimension; a WebP variant is written
// alongside the JPEG so the frontend can pick the lighter one.
type MediaService struct {
	uploadDir    string
	maxSizeBytes int64
	imageMaxDim  int
}

func NewMediaService(cfg *config.Config) *MediaService {
	return &MediaService{
		uploadDir:    cfg.UploadDir,
		maxSizeBytes: int64(cfg.UploadMaxSizeMB) * 1024 * 1024,
		imageMaxDim:  cfg.UploadImageMaxDim,
	}
}

// SaveImage validates, resizes and stores an uploaded image. It returns the
// public path of the JPEG rendition.
func (s *MediaService) SaveImage(filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxSizeBytes/(1024*1024)))
	}
	if !strings.HasPrefix(http.DetectContentType(content), "image/") {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	resized := capDimensions(decoded, s.imageMaxDim)

	jpegBytes, err := encodeJPEG(resized, jpegQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	webpBytes, err := encodeWebP(resized, webpQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String()
	jpegRel := name + ".jpg"
	webpRel := name + ".webp"

	if err := writeMediaFile(filepath.Join(s.uploadDir, jpegRel), jpegBytes); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := writeMediaFile(filepath.Join(s.uploadDir, webpRel), webpBytes); err != nil {
		_ = os.Remove(filepath.Join(s.uploadDir, jpegRel))
		return "", models.NewInternalError(err)
	}

	observability.UploadBytes.Observe(float64(len(jpegBytes) + len(webpBytes)))
	return "/uploads/" + jpegRel, nil
}

// SaveVideo stores an uploaded video as-is and returns its public path.
func (s *MediaService) SaveVideo(filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxSizeBytes/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mp4", ".webm", ".mov":
	default:
		return "", models.NewValidationError("Unsupported video format")
	}

	rel := uuid.New().String() + ext
	if err := writeMediaFile(filepath.Join(s.uploadDir, rel), content); err != nil {
		return "", models.NewInternalError(err)
	}

	observability.UploadBytes.Observe(float64(len(content)))
	return "/uploads/" + rel, nil
}

// Remove deletes the stored renditions behind a public media path. Used to
// roll back an upload when the post row cannot be written. Missing files are
// not an error.
func (s *MediaService) Remove(publicPath string) {
	rel := strings.TrimPrefix(publicPath, "/uploads/")
	if rel == "" || rel == publicPath {
		return
	}
	rel = filepath.Base(rel)

	_ = os.Remove(filepath.Join(s.uploadDir, rel))
	if ext := filepath.Ext(rel); ext == ".jpg" {
		_ = os.Remove(filepath.Join(s.uploadDir, strings.TrimSuffix(rel, ext)+".webp"))
	}
}

func capDimensions(src image.Image, maxDim int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeMediaFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
