package constants

import "strings"

const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
)

// AllowedExtensions holds the default extensions picked up by directory ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

const (
	// ClassifierExcerptLines is how many leading page-1 lines the classifier sees.
	ClassifierExcerptLines = 30
	// MaxExcerptChars caps the text sent to the fallback model.
	MaxExcerptChars = 30000
	// MinTextChars is the quality gate below which the fallback switches to image mode.
	MinTextChars = 400
)

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns PDF, IMAGE or "" for unsupported extensions.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png", "tif", "tiff", "webp":
		return IMAGE
	default:
		return ""
	}
}
