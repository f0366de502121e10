package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"strings"

	_ "golang.org/x/image/webp"
)

const octetStream = "application/octet-stream"

type ImageData struct {
	data     []byte
	mimeType string
}

// NewImageData keeps the MIME type supplied by the client. A missing or generic
// type is replaced with one sniffed from the bytes.
func NewImageData(data []byte, mimeType string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" || mimeType == octetStream {
		mimeType = DetectMimeType(data)
	}

	return &ImageData{
		data:     data,
		mimeType: mimeType,
	}, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) MimeType() string {
	return i.mimeType
}

func (i *ImageData) Size() int {
	return len(i.data)
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

// DetectMimeType reports the MIME type of an encoded image, falling back to
// content sniffing for anything the registered decoders do not recognise.
func DetectMimeType(data []byte) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if t := mime.TypeByExtension("." + format); t != "" {
			return t
		}
		return "image/" + format
	}
	return http.DetectContentType(data)
}
