package admin

import (
	"encoding/base64"
	"mime"
	"net/http"
	"strings"
)

// ImageDataURL embeds an uploaded image as a data URL, the same form the
// product document stores for custom products.
func ImageDataURL(contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ValidationError{Field: "image", Message: "Please select an image"}
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt == "" || mt == "application/octet-stream" {
		mt, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}
	if !strings.HasPrefix(mt, "image/") {
		return "", &ValidationError{Field: "image", Message: "file is not an image"}
	}

	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
