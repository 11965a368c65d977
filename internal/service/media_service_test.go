package service

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vitrine/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMediaService(t *testing.T) *MediaService {
	t.Helper()
	return NewMediaService(&config.Config{
		UploadDir:         t.TempDir(),
		UploadMaxSizeMB:   10,
		UploadImageMaxDim: 1080,
	})
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, jpeg.Encode(buf, img, nil))
	return buf.Bytes()
}

func TestMediaService_SaveImage(t *testing.T) {
	svc := testMediaService(t)

	path, err := svc.SaveImage("foto.jpg", testJPEG(t, 640, 480))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".jpg"))

	// The JPEG and its WebP variant are both on disk.
	rel := strings.TrimPrefix(path, "/uploads/")
	_, statErr := os.Stat(filepath.Join(svc.uploadDir, rel))
	require.NoError(t, statErr)
	webpRel := strings.TrimSuffix(rel, ".jpg") + ".webp"
	_, statErr = os.Stat(filepath.Join(svc.uploadDir, webpRel))
	require.NoError(t, statErr)
}

func TestMediaService_SaveImageCapsDimensions(t *testing.T) {
	svc := testMediaService(t)

	path, err := svc.SaveImage("grande.jpg", testJPEG(t, 2400, 1200))
	require.NoError(t, err)

	rel := strings.TrimPrefix(path, "/uploads/")
	f, err := os.Open(filepath.Join(svc.uploadDir, rel))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	decoded, _, err := image.Decode(f)
	require.NoError(t, err)
	b := decoded.Bounds()
	assert.Equal(t, 1080, b.Dx())
	assert.LessOrEqual(t, b.Dy(), 1080)
}

func TestMediaService_SaveImageRejectsGarbage(t *testing.T) {
	svc := testMediaService(t)

	_, err := svc.SaveImage("nota.txt", []byte("not an image at all"))
	assertValidationError(t, err)

	_, err = svc.SaveImage("vazio.jpg", nil)
	assertValidationError(t, err)
}

func TestMediaService_SaveImageRejectsOversize(t *testing.T) {
	svc := NewMediaService(&config.Config{
		UploadDir:         t.TempDir(),
		UploadMaxSizeMB:   1,
		UploadImageMaxDim: 1080,
	})
	big := make([]byte, 2*1024*1024)
	_, err := svc.SaveImage("grande.jpg", big)
	assertValidationError(t, err)
}

func TestMediaService_Remove(t *testing.T) {
	svc := testMediaService(t)

	path, err := svc.SaveImage("foto.jpg", testJPEG(t, 320, 240))
	require.NoError(t, err)
	videoPath, err := svc.SaveVideo("clipe.mp4", []byte("fake video bytes"))
	require.NoError(t, err)

	svc.Remove(path)
	svc.Remove(videoPath)

	// Both image renditions and the video are gone.
	rel := strings.TrimPrefix(path, "/uploads/")
	_, statErr := os.Stat(filepath.Join(svc.uploadDir, rel))
	assert.True(t, os.IsNotExist(statErr))
	webpRel := strings.TrimSuffix(rel, ".jpg") + ".webp"
	_, statErr = os.Stat(filepath.Join(svc.uploadDir, webpRel))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(svc.uploadDir, strings.TrimPrefix(videoPath, "/uploads/")))
	assert.True(t, os.IsNotExist(statErr))

	// Paths outside the uploads prefix and repeat removals are no-ops.
	svc.Remove(path)
	svc.Remove("/etc/passwd")
}

func TestMediaService_SaveVideo(t *testing.T) {
	svc := testMediaService(t)

	path, err := svc.SaveVideo("clipe.mp4", []byte("fake video bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.True(t, strings.HasSuffix(path, ".mp4"))

	_, err = svc.SaveVideo("planilha.xls", []byte("bytes"))
	assertValidationError(t, err)
}
