package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"mime"
	"strings"

	"clipmark/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	ProfileImageMaxSize = 1024
	ProfileWebPQuality  = 80

	MaxVideoSizeBytes     = 100 * 1024 * 1024
	MaxThumbnailSizeBytes = 2 * 1024 * 1024
)

var allowedVideoTypes = map[string]bool{
	"video/mp4":        true,
	"video/webm":       true,
	"video/ogg":        true,
	"video/quicktime":  true,
	"video/x-msvideo":  true,
	"video/x-matroska": true,
	"video/mpeg":       true,
}

// processProfileImage validates, decodes, downscales, and re-encodes an
// uploaded picture as WebP. All profile and portfolio images go through this
// so arbitrary uploads never reach storage verbatim.
func processProfileImage(content []byte, contentType string) ([]byte, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if !isAllowedImageMIME(contentType) {
		return nil, models.NewValidationError("Image must be jpeg, png, gif, or webp")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	resized := resizeToFit(decoded, ProfileImageMaxSize, ProfileImageMaxSize)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, resized, &webp.Options{Quality: ProfileWebPQuality}); err != nil {
		return nil, models.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
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
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// validateVideoUpload checks the clip file before any blob is written.
func validateVideoUpload(content []byte, contentType string) error {
	if len(content) == 0 {
		return models.NewValidationError("No video file uploaded")
	}
	if !allowedVideoTypes[normalizeContentType(contentType)] {
		return models.NewValidationError("Video must be mp4, webm, ogg, quicktime, avi, mkv, or mpeg")
	}
	if len(content) > MaxVideoSizeBytes {
		return models.NewValidationError(fmt.Sprintf("Video too large (max %dMB)", MaxVideoSizeBytes/(1024*1024)))
	}
	return nil
}

// validateThumbnailUpload checks the thumbnail file before any blob is written.
func validateThumbnailUpload(content []byte, contentType string) error {
	if len(content) == 0 {
		return models.NewValidationError("Thumbnail file is required")
	}
	if !isAllowedImageMIME(contentType) {
		return models.NewValidationError("Thumbnail must be jpeg, png, gif, or webp")
	}
	if len(content) > MaxThumbnailSizeBytes {
		return models.NewValidationError(fmt.Sprintf("Thumbnail too large (max %dMB)", MaxThumbnailSizeBytes/(1024*1024)))
	}
	return nil
}
