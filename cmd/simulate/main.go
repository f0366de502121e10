package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Chandansaha2005/Twindex/internal/domain/valueobjects"
	"github.com/Chandansaha2005/Twindex/model"
)

// simulate は起動中のサーバーに /simulate リクエストを送り、結果を標準出力に書く
func main() {
	baseURL := flag.String("url", "http://127.0.0.1:8000", "server base URL")
	prompt := flag.String("prompt", "", "prompt text")
	promptFile := flag.String("prompt-file", "", "read the prompt from this file")
	imagePath := flag.String("image", "", "prescription image to send as multipart")
	timeout := flag.Duration("timeout", 2*time.Minute, "request timeout")
	flag.Parse()

	if *promptFile != "" {
		b, err := os.ReadFile(*promptFile)
		if err != nil {
			log.Fatalf("failed to read prompt file: %v", err)
		}
		*prompt = strings.TrimSpace(string(b))
	}

	var (
		body        *bytes.Buffer
		contentType string
		err         error
	)
	if *imagePath != "" {
		body, contentType, err = multipartBody(*prompt, *imagePath)
	} else {
		body, contentType, err = jsonBody(*prompt)
	}
	if err != nil {
		log.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimSuffix(*baseURL, "/")+"/simulate", body)
	if err != nil {
		log.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: *timeout}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e model.ErrorResponse
		if json.Unmarshal(raw, &e) == nil && e.Detail != "" {
			log.Fatalf("server returned %d: %s", resp.StatusCode, e.Detail)
		}
		log.Fatalf("server returned %d: %s", resp.StatusCode, raw)
	}

	var result model.SimulationResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Fatalf("invalid response: %v", err)
	}
	fmt.Println(result.Result)
}

func jsonBody(prompt string) (*bytes.Buffer, string, error) {
	b, err := json.Marshal(model.SimulationRequest{Prompt: prompt})
	if err != nil {
		return nil, "", err
	}
	return bytes.NewBuffer(b), "application/json", nil
}

func multipartBody(prompt, imagePath string) (*bytes.Buffer, string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	image, err := valueobjects.NewImageData(data, "")
	if err != nil {
		return nil, "", err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, "", fmt.Errorf("failed to write prompt: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(imagePath)))
	header.Set("Content-Type", image.MimeType())
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(image.Data()); err != nil {
		return nil, "", fmt.Errorf("failed to write image: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
