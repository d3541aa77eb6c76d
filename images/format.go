package images

import (
	"path/filepath"
	"strings"
)

// ImageFormat represents the encodings the codec can read.
type ImageFormat string

const (
	// FormatUnknown is reported for extensions the codec does not recognise.
	FormatUnknown ImageFormat = ""
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
	// FormatWebP is the WebP image format.
	FormatWebP ImageFormat = "webp"
	// FormatGIF is the GIF image format.
	FormatGIF ImageFormat = "gif"
	// FormatBMP is the BMP image format.
	FormatBMP ImageFormat = "bmp"
	// FormatTIFF is the TIFF image format.
	FormatTIFF ImageFormat = "tiff"
)

var extensionFormats = map[string]ImageFormat{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"webp": FormatWebP,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
}

// Extension returns the lower-cased extension of path without the leading dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// FormatFromPath detects the format from the file extension, case-insensitively.
//
// Arguments:
// - path: The file path.
//
// Returns:
// - ImageFormat: The detected format, or FormatUnknown.
//
// @example
// images.FormatFromPath("a.JPG") // FormatJPEG
func FormatFromPath(path string) ImageFormat {
	return extensionFormats[Extension(path)]
}
