package genai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

type staticKey string

func (k staticKey) APIKey() (string, bool) {
	return string(k), k != ""
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, key string, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient(Options{
		Keys:       staticKey(key),
		BaseURL:    "https://gemini.test/v1beta",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestNewClientRequiresKeySource(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for missing key source")
	}
}

func TestGenerateContentSetsKeyHeaderPerRequest(t *testing.T) {
	var gotKey, gotPath string
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`), nil
	})

	resp, err := client.GenerateContent(context.Background(), "gemini-3-flash-preview", GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: "hi"}}}},
	})
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if gotKey != "sk-test" {
		t.Fatalf("x-goog-api-key = %q, want %q", gotKey, "sk-test")
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-3-flash-preview:generateContent") {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if got := FirstText(resp); got != "ok" {
		t.Fatalf("FirstText = %q, want %q", got, "ok")
	}
}

func TestGenerateContentDecodesStructuredError(t *testing.T) {
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound,
			`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`), nil
	})

	_, err := client.GenerateContent(context.Background(), "m", GenerateContentRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != "NOT_FOUND" {
		t.Fatalf("Status = %q, want NOT_FOUND", apiErr.Status)
	}
	if !apiErr.EntityNotFound() {
		t.Fatal("expected EntityNotFound to report true")
	}
}

func TestGenerateContentDecodesPlainTextError(t *testing.T) {
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, "upstream exploded"), nil
	})

	_, err := client.GenerateContent(context.Background(), "m", GenerateContentRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("HTTPStatus = %d, want 500", apiErr.HTTPStatus)
	}
	if apiErr.Message != "upstream exploded" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
	if apiErr.EntityNotFound() {
		t.Fatal("500 must not classify as entity not found")
	}
}

func TestStartVideoJobBuildsInstancePayload(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(r.URL.Path, ":predictLongRunning") {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"name":"operations/abc123","done":false}`), nil
	})

	op, err := client.StartVideoJob(context.Background(), "veo-3.1-fast-generate-preview", "a lamp ad", VideoConfig{
		NumberOfVideos: 1,
		Resolution:     "1080p",
		AspectRatio:    "16:9",
	})
	if err != nil {
		t.Fatalf("StartVideoJob returned error: %v", err)
	}
	if op.Name != "operations/abc123" {
		t.Fatalf("operation name = %q", op.Name)
	}

	instances, ok := captured["instances"].([]any)
	if !ok || len(instances) != 1 {
		t.Fatalf("instances = %#v, want one entry", captured["instances"])
	}
	first, _ := instances[0].(map[string]any)
	if first["prompt"] != "a lamp ad" {
		t.Fatalf("prompt = %v", first["prompt"])
	}
	params, _ := captured["parameters"].(map[string]any)
	if params["resolution"] != "1080p" {
		t.Fatalf("resolution = %v", params["resolution"])
	}
}

func TestStartVideoJobRejectsMissingOperationName(t *testing.T) {
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"done":false}`), nil
	})
	if _, err := client.StartVideoJob(context.Background(), "veo", "p", VideoConfig{}); err == nil {
		t.Fatal("expected error for operation without a name")
	}
}

func TestPollVideoJobSurfacesOperationError(t *testing.T) {
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"name":"operations/abc","done":true,"error":{"code":13,"message":"render failed"}}`), nil
	})
	_, err := client.PollVideoJob(context.Background(), "operations/abc")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "render failed" {
		t.Fatalf("Message = %q", apiErr.Message)
	}
}

func TestDownloadSendsCredentialHeader(t *testing.T) {
	var gotKey string
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		gotKey = r.Header.Get("x-goog-api-key")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"video/mp4"}},
			Body:       io.NopCloser(strings.NewReader("mp4bytes")),
		}, nil
	})

	data, mime, err := client.Download(context.Background(), "https://files.test/v/1")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if gotKey != "sk-test" {
		t.Fatalf("x-goog-api-key = %q", gotKey)
	}
	if string(data) != "mp4bytes" || mime != "video/mp4" {
		t.Fatalf("data = %q, mime = %q", data, mime)
	}
}

func TestDownloadResolvesRelativeURI(t *testing.T) {
	var gotURL string
	client := newTestClient(t, "sk-test", func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("x")),
		}, nil
	})
	if _, _, err := client.Download(context.Background(), "files/abc:download"); err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if gotURL != "https://gemini.test/v1beta/files/abc:download" {
		t.Fatalf("url = %q", gotURL)
	}
}

func TestOperationDownloadURIPrefersGeneratedSamples(t *testing.T) {
	op := &Operation{
		Done: true,
		Response: &OperationResponse{
			GenerateVideoResponse: &GenerateVideoResponse{
				GeneratedSamples: []GeneratedVideo{{Video: &VideoRef{URI: "https://files.test/sample"}}},
				GeneratedVideos:  []GeneratedVideo{{Video: &VideoRef{URI: "https://files.test/video"}}},
			},
		},
	}
	if got := op.DownloadURI(); got != "https://files.test/sample" {
		t.Fatalf("DownloadURI = %q", got)
	}

	op.Response.GenerateVideoResponse.GeneratedSamples = nil
	if got := op.DownloadURI(); got != "https://files.test/video" {
		t.Fatalf("DownloadURI fallback = %q", got)
	}

	if got := (&Operation{Done: true}).DownloadURI(); got != "" {
		t.Fatalf("DownloadURI on empty response = %q, want empty", got)
	}
}

func TestFirstInlineImageSkipsTextParts(t *testing.T) {
	resp := &GenerateContentResponse{Candidates: []Candidate{{
		Content: Content{Parts: []Part{
			{Text: "here is your image"},
			{InlineData: &Blob{MimeType: "image/png", Data: "aGk="}},
		}},
	}}}
	inline := FirstInlineImage(resp)
	if inline == nil || inline.MimeType != "image/png" {
		t.Fatalf("FirstInlineImage = %#v", inline)
	}
	if FirstInlineImage(&GenerateContentResponse{}) != nil {
		t.Fatal("expected nil for response without inline data")
	}
}

func TestGroundingSourcesExtractsWebChunks(t *testing.T) {
	resp := &GenerateContentResponse{Candidates: []Candidate{{
		GroundingMetadata: &GroundingMetadata{GroundingChunks: []GroundingChunk{
			{Web: &GroundingWeb{Title: "Example", URI: "https://example.com"}},
			{},
		}},
	}}}
	sources := GroundingSources(resp)
	if len(sources) != 1 {
		t.Fatalf("len(sources) = %d, want 1", len(sources))
	}
	if sources[0].Title != "Example" || sources[0].URI != "https://example.com" {
		t.Fatalf("sources[0] = %#v", sources[0])
	}
}
