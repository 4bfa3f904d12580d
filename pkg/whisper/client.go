package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "whisper-1"

	// Recordings are English sales calls; a fixed language hint improves
	// accuracy and keeps transcripts deterministic across providers.
	language = "en"
)

// Client performs speech-to-text transcription against the OpenAI audio API.
type Client interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// transcriptionResponse is the response body from POST /v1/audio/transcriptions.
type transcriptionResponse struct {
	Text string `json:"text"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithModel overrides the default transcription model.
func WithModel(model string) Option {
	return func(c *httpClient) {
		c.model = model
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewClient creates a Whisper transcription client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		http: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", eris.Wrap(err, "whisper: create form file")
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", eris.Wrap(err, "whisper: copy audio")
	}
	if err := mw.WriteField("model", c.model); err != nil {
		return "", eris.Wrap(err, "whisper: write model field")
	}
	if err := mw.WriteField("language", language); err != nil {
		return "", eris.Wrap(err, "whisper: write language field")
	}
	if err := mw.Close(); err != nil {
		return "", eris.Wrap(err, "whisper: close multipart writer")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", &body)
	if err != nil {
		return "", eris.Wrap(err, "whisper: create request")
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", eris.Wrap(err, "whisper: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "whisper: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("whisper: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result transcriptionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", eris.Wrap(err, "whisper: unmarshal response")
	}

	return result.Text, nil
}
