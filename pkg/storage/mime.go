package storage

import (
	"net/http"
	"strings"
)

// mimeExtensions maps the MIME types this application expects (image
// uploads, mostly) to file extensions used in storage handles.
var mimeExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"image/bmp":       ".bmp",
	"image/tiff":      ".tiff",
	"application/pdf": ".pdf",
	"text/plain":      ".txt",
}

// detectMIME sniffs the MIME type from leading bytes.
func detectMIME(head []byte) string {
	if len(head) == 0 {
		return "application/octet-stream"
	}
	contentType := http.DetectContentType(head)
	// DetectContentType appends a charset for text types; the bare type
	// is what gets stored and matched against mimeExtensions.
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

// extFromMIME returns the handle extension for a MIME type, or ".bin"
// for anything unrecognized.
func extFromMIME(contentType string) string {
	if ext, ok := mimeExtensions[contentType]; ok {
		return ext
	}
	return ".bin"
}
