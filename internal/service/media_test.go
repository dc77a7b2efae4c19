package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG renders a small solid image for upload tests.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestProcessProfileImage_EncodesWebP(t *testing.T) {
	t.Parallel()

	out, err := processProfileImage(testPNG(t, 32, 32), "image/png")
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 32, decoded.Bounds().Dx())
	assert.Equal(t, 32, decoded.Bounds().Dy())
}

func TestProcessProfileImage_DownscalesLargeImages(t *testing.T) {
	t.Parallel()

	out, err := processProfileImage(testPNG(t, 2048, 1024), "image/png")
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, ProfileImageMaxSize, decoded.Bounds().Dx())
	assert.Equal(t, ProfileImageMaxSize/2, decoded.Bounds().Dy())
}

func TestProcessProfileImage_Rejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		content     []byte
		contentType string
	}{
		{"empty file", nil, "image/png"},
		{"wrong type", []byte("%PDF-1.4"), "application/pdf"},
		{"corrupt image", []byte("not an image"), "image/png"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := processProfileImage(tc.content, tc.contentType)
			assertValidationError(t, err)
		})
	}
}

func TestNormalizeContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/png", normalizeContentType("image/png"))
	assert.Equal(t, "image/jpeg", normalizeContentType("IMAGE/JPEG; charset=utf-8"))
	assert.Equal(t, "video/mp4", normalizeContentType("  video/mp4  "))
	assert.Equal(t, "", normalizeContentType(""))
}

func TestValidateVideoUpload(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateVideoUpload([]byte{0x00, 0x01}, "video/mp4"))
	assert.NoError(t, validateVideoUpload([]byte{0x00}, "video/quicktime"))

	assertValidationError(t, validateVideoUpload(nil, "video/mp4"))
	assertValidationError(t, validateVideoUpload([]byte{0x00}, "image/png"))
	assertValidationError(t, validateVideoUpload([]byte{0x00}, "video/x-flv"))
}

func TestValidateVideoUpload_SizeCap(t *testing.T) {
	t.Parallel()

	err := validateVideoUpload(make([]byte, MaxVideoSizeBytes+1), "video/mp4")
	assertValidationError(t, err)
	assert.Contains(t, err.Error(), "100MB")
}

func TestValidateThumbnailUpload(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateThumbnailUpload(testPNG(t, 4, 4), "image/png"))

	assertValidationError(t, validateThumbnailUpload(nil, "image/png"))
	assertValidationError(t, validateThumbnailUpload([]byte{0x00}, "video/mp4"))

	err := validateThumbnailUpload(make([]byte, MaxThumbnailSizeBytes+1), "image/jpeg")
	assertValidationError(t, err)
	assert.Contains(t, err.Error(), "2MB")
}
