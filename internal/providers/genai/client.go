package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/icecube7035-art/ADAI/internal/infra"
)

// KeySource supplies the API credential for each request. The active key is
// resolved per call so that a credential selected mid-session takes effect
// without rebuilding the client.
type KeySource interface {
	APIKey() (string, bool)
}

// Options controls how the Gemini client is configured.
type Options struct {
	Keys       KeySource
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a thin facade over the Gemini REST API. It translates normalized
// requests into provider wire shapes and unwraps responses; it carries no
// business logic.
type Client struct {
	keys       KeySource
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Content, Part and friends mirror the generateContent wire format.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

type Blob struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type Tool struct {
	GoogleSearch *GoogleSearch `json:"googleSearch,omitempty"`
}

type GoogleSearch struct{}

// Schema describes the structured-response contract requested from the
// model. Only the subset of JSON-schema the service needs is modeled.
type Schema struct {
	Type       string             `json:"type"`
	Items      *Schema            `json:"items,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// ImageConfig selects the output resolution class and aspect ratio for
// image generation.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

type GenerationConfig struct {
	ResponseMimeType string       `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema      `json:"responseSchema,omitempty"`
	ImageConfig      *ImageConfig `json:"imageConfig,omitempty"`
}

type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	Tools            []Tool            `json:"tools,omitempty"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Candidate struct {
	Content           Content            `json:"content"`
	FinishReason      string             `json:"finishReason,omitempty"`
	GroundingMetadata *GroundingMetadata `json:"groundingMetadata,omitempty"`
}

type GroundingMetadata struct {
	GroundingChunks []GroundingChunk `json:"groundingChunks,omitempty"`
}

type GroundingChunk struct {
	Web *GroundingWeb `json:"web,omitempty"`
}

type GroundingWeb struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// VideoConfig is the parameter block of a long-running video job.
type VideoConfig struct {
	NumberOfVideos int    `json:"numberOfVideos,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
}

// Operation is a long-running video generation job handle.
type Operation struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Response *OperationResponse `json:"response,omitempty"`
	Error    *opError           `json:"error,omitempty"`
}

type OperationResponse struct {
	GenerateVideoResponse *GenerateVideoResponse `json:"generateVideoResponse,omitempty"`
}

type GenerateVideoResponse struct {
	GeneratedSamples []GeneratedVideo `json:"generatedSamples,omitempty"`
	GeneratedVideos  []GeneratedVideo `json:"generatedVideos,omitempty"`
}

type GeneratedVideo struct {
	Video *VideoRef `json:"video,omitempty"`
}

type VideoRef struct {
	URI string `json:"uri,omitempty"`
}

// DownloadURI returns the first resolvable download locator of a completed
// job, or "".
func (o *Operation) DownloadURI() string {
	if o == nil || o.Response == nil || o.Response.GenerateVideoResponse == nil {
		return ""
	}
	r := o.Response.GenerateVideoResponse
	for _, set := range [][]GeneratedVideo{r.GeneratedSamples, r.GeneratedVideos} {
		for _, v := range set {
			if v.Video != nil && v.Video.URI != "" {
				return v.Video.URI
			}
		}
	}
	return ""
}

type opError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	} `json:"error"`
}

// APIError is a typed provider rejection. Classification into the service's
// error taxonomy happens on this type, never by matching free-text messages
// upstream.
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini status %d: %s", e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("gemini status %d", e.HTTPStatus)
}

// EntityNotFound reports the provider rejection emitted when the referenced
// entity (typically the billing project behind the key) does not exist.
func (e *APIError) EntityNotFound() bool {
	return e.Status == "NOT_FOUND" || e.HTTPStatus == http.StatusNotFound
}

// NewClient constructs a Gemini client with sane defaults. Callers may
// provide a nil HTTP client; a reusable one with a generous timeout will be
// created.
func NewClient(opts Options) (*Client, error) {
	if opts.Keys == nil {
		return nil, fmt.Errorf("genai: key source is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		keys:       opts.Keys,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// GenerateContent invokes models/{model}:generateContent.
func (c *Client) GenerateContent(ctx context.Context, model string, req GenerateContentRequest) (*GenerateContentResponse, error) {
	var resp GenerateContentResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(model))
	if err := c.invoke(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartVideoJob submits an asynchronous video generation job and returns
// its operation handle.
func (c *Client) StartVideoJob(ctx context.Context, model, prompt string, cfg VideoConfig) (*Operation, error) {
	payload := map[string]any{
		"instances":  []map[string]any{{"prompt": prompt}},
		"parameters": cfg,
	}
	var op Operation
	path := fmt.Sprintf("/models/%s:predictLongRunning", url.PathEscape(model))
	if err := c.invoke(ctx, http.MethodPost, path, payload, &op); err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, fmt.Errorf("genai: video job returned no operation name")
	}
	return &op, nil
}

// PollVideoJob fetches the current status of a long-running job.
func (c *Client) PollVideoJob(ctx context.Context, name string) (*Operation, error) {
	var op Operation
	if err := c.invoke(ctx, http.MethodGet, "/"+strings.TrimLeft(name, "/"), nil, &op); err != nil {
		return nil, err
	}
	if op.Error != nil {
		return nil, &APIError{HTTPStatus: http.StatusBadGateway, Message: op.Error.Message}
	}
	return &op, nil
}

// Download fetches a signed asset locator with the credential header and
// returns the bytes plus the reported content type.
func (c *Client) Download(ctx context.Context, uri string) ([]byte, string, error) {
	target := uri
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(uri, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}
	if key, ok := c.keys.APIKey(); ok {
		req.Header.Set("x-goog-api-key", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, "", c.decodeError(resp)
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return blob, resp.Header.Get("Content-Type"), nil
}

// FirstInlineImage scans response parts for an inline image payload.
func FirstInlineImage(resp *GenerateContentResponse) *Blob {
	if resp == nil {
		return nil
	}
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return part.InlineData
			}
		}
	}
	return nil
}

// FirstText concatenates the text parts of the first candidate.
func FirstText(resp *GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

// GroundingSources extracts the web citations of the first candidate.
func GroundingSources(resp *GenerateContentResponse) []GroundingWeb {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var out []GroundingWeb
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web != nil {
			out = append(out, *chunk.Web)
		}
	}
	return out
}

func (c *Client) invoke(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key, ok := c.keys.APIKey(); ok {
		req.Header.Set("x-goog-api-key", key)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("genai: request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{HTTPStatus: resp.StatusCode}
	data, _ := io.ReadAll(resp.Body)
	var parsed apiErrorResponse
	if err := json.Unmarshal(data, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Status = parsed.Error.Status
		apiErr.Message = parsed.Error.Message
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}
