package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Chandansaha2005/Twindex/internal/application/usecases"
	"github.com/Chandansaha2005/Twindex/internal/domain/entities"
	"github.com/Chandansaha2005/Twindex/internal/domain/valueobjects"
)

// RequestEncoding is one of the two body encodings /simulate accepts.
type RequestEncoding int

const (
	EncodingJSON RequestEncoding = iota + 1
	EncodingMultipart
)

func (e RequestEncoding) String() string {
	switch e {
	case EncodingJSON:
		return "application/json"
	case EncodingMultipart:
		return "multipart/form-data"
	default:
		return "unknown"
	}
}

const (
	promptField = "prompt"
	imageField  = "image"

	promptPreviewLength = 50
)

var (
	errInvalidJSON      = entities.NewValidationError("Invalid JSON body")
	errNotJSONObject    = entities.NewValidationError("Request body must be a JSON object")
	errPromptNotString  = entities.NewValidationError("Prompt must be a string")
	errInvalidMultipart = entities.NewValidationError("Invalid multipart form data")
)

type RequestService struct {
	maxMemory int64
	logger    *zap.SugaredLogger
}

// NewRequestService returns a parser that buffers at most maxMemory bytes of a
// multipart body in memory before spilling file parts to disk.
func NewRequestService(maxMemory int64, logger *zap.SugaredLogger) *RequestService {
	return &RequestService{
		maxMemory: maxMemory,
		logger:    logger,
	}
}

// ResolveEncoding maps a Content-Type header onto an accepted encoding.
// Parameters such as charset or boundary are ignored; the media type must match exactly.
func ResolveEncoding(contentType string) (RequestEncoding, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return 0, entities.ErrUnsupportedContentType
	}

	switch mediaType {
	case "application/json":
		return EncodingJSON, nil
	case "multipart/form-data":
		return EncodingMultipart, nil
	default:
		return 0, entities.ErrUnsupportedContentType
	}
}

// ParseFromRequest extracts the prompt and optional image. Prompt presence is
// validated later by the use case so both encodings share one rule.
func (s *RequestService) ParseFromRequest(r *http.Request) (*usecases.SimulationInput, error) {
	encoding, err := ResolveEncoding(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	switch encoding {
	case EncodingJSON:
		return s.parseJSON(r)
	case EncodingMultipart:
		return s.parseMultipart(r)
	default:
		return nil, fmt.Errorf("unhandled encoding %v", encoding)
	}
}

func (s *RequestService) parseJSON(r *http.Request) (*usecases.SimulationInput, error) {
	dec := json.NewDecoder(r.Body)

	var body map[string]json.RawMessage
	if err := dec.Decode(&body); err != nil {
		return nil, classifyJSONError(err)
	}
	// 一つのJSON値の後に続くデータは不正なボディとして扱う
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, classifyJSONError(err)
		}
		return nil, errInvalidJSON
	}
	if body == nil {
		return nil, errNotJSONObject
	}

	var prompt string
	if raw, ok := body[promptField]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &prompt); err != nil {
			return nil, errPromptNotString
		}
	}

	s.logger.Infow("Processing JSON simulation request", "prompt", PromptPreview(prompt))

	return &usecases.SimulationInput{Prompt: prompt}, nil
}

func classifyJSONError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return err
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errNotJSONObject
	}

	return errInvalidJSON
}

func (s *RequestService) parseMultipart(r *http.Request) (*usecases.SimulationInput, error) {
	if err := r.ParseMultipartForm(s.maxMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, err
		}
		return nil, errInvalidMultipart
	}
	defer r.MultipartForm.RemoveAll()

	var prompt string
	if values := r.MultipartForm.Value[promptField]; len(values) > 0 {
		prompt = values[0]
	}

	input := &usecases.SimulationInput{Prompt: prompt}

	// 空のファイルパートは画像なしとして扱う
	files := r.MultipartForm.File[imageField]
	if len(files) == 0 || files[0].Size == 0 {
		s.logger.Infow("Processing form-data simulation request", "prompt", PromptPreview(prompt))
		return input, nil
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read image part: %w", err)
	}

	image, err := valueobjects.NewImageData(data, header.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to create image data: %w", err)
	}
	input.Image = image

	s.logger.Infow("Processing prescription analysis with image",
		"mime_type", image.MimeType(),
		"size", image.Size(),
	)

	return input, nil
}

// PromptPreview returns at most the first 50 characters of a prompt for logging.
func PromptPreview(prompt string) string {
	if prompt == "" {
		return "N/A"
	}
	if utf8.RuneCountInString(prompt) <= promptPreviewLength {
		return prompt
	}
	return string([]rune(prompt)[:promptPreviewLength]) + "..."
}
