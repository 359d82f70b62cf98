package text

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/icecube7035-art/ADAI/internal/domain"
	"github.com/icecube7035-art/ADAI/internal/providers/genai"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

type staticKey string

func (k staticKey) APIKey() (string, bool) {
	return string(k), k != ""
}

func newFakeClient(t *testing.T, rt roundTripFunc) *genai.Client {
	t.Helper()
	client, err := genai.NewClient(genai.Options{
		Keys:       staticKey("sk-test"),
		BaseURL:    "https://gemini.test/v1beta",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestGeminiGeneratorRequestsSchemaAndSearch(t *testing.T) {
	var captured genai.GenerateContentRequest
	client := newFakeClient(t, func(r *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		body := `{"candidates":[{
			"content":{"parts":[{"text":"[{\"platform\":\"Instagram\",\"headline\":\"Light up\",\"body\":\"Adaptive glow.\",\"cta\":\"Shop Now\"}]"}]},
			"groundingMetadata":{"groundingChunks":[{"web":{"title":"Example","uri":"https://example.com"}}]}
		}]}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	})

	gen := NewGeminiGenerator(client, "gemini-3-flash-preview")
	result, err := gen.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(captured.Tools) != 1 || captured.Tools[0].GoogleSearch == nil {
		t.Fatalf("expected googleSearch tool, got %#v", captured.Tools)
	}
	if captured.GenerationConfig == nil || captured.GenerationConfig.ResponseMimeType != "application/json" {
		t.Fatalf("generation config = %#v", captured.GenerationConfig)
	}
	if captured.GenerationConfig.ResponseSchema == nil || captured.GenerationConfig.ResponseSchema.Type != "ARRAY" {
		t.Fatalf("response schema = %#v", captured.GenerationConfig.ResponseSchema)
	}

	if len(result.Variants) != 1 || result.Variants[0].Headline != "Light up" {
		t.Fatalf("variants = %#v", result.Variants)
	}
	if len(result.Citations) != 1 || result.Citations[0].URI != "https://example.com" {
		t.Fatalf("citations = %#v", result.Citations)
	}
}

func TestGeminiGeneratorWrapsParseFailure(t *testing.T) {
	client := newFakeClient(t, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{"candidates":[{"content":{"parts":[{"text":"not json"}]}}]}`)),
		}, nil
	})

	gen := NewGeminiGenerator(client, "gemini-3-flash-preview")
	_, err := gen.Generate(context.Background(), sampleRequest())
	var ge *domain.GenerationError
	if !errors.As(err, &ge) {
		t.Fatalf("expected *GenerationError, got %T: %v", err, err)
	}
	if ge.Stage != domain.StageText {
		t.Fatalf("stage = %q, want %q", ge.Stage, domain.StageText)
	}
	if ge.Message != "failed to generate text ads" {
		t.Fatalf("message = %q", ge.Message)
	}
}

func TestGeminiGeneratorPassesThroughAPIError(t *testing.T) {
	client := newFakeClient(t, func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body: io.NopCloser(strings.NewReader(
				`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`)),
		}, nil
	})

	gen := NewGeminiGenerator(client, "gemini-3-flash-preview")
	_, err := gen.Generate(context.Background(), sampleRequest())
	var apiErr *genai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if !apiErr.EntityNotFound() {
		t.Fatal("expected EntityNotFound")
	}
}

func TestParseOpenAIVariantsEnvelope(t *testing.T) {
	raw := `{"variations":[{"platform":"Facebook","headline":"h","body":"b","cta":"c"}]}`
	variants, err := parseOpenAIVariants(raw)
	if err != nil {
		t.Fatalf("parseOpenAIVariants returned error: %v", err)
	}
	if len(variants) != 1 || variants[0].Platform != "Facebook" {
		t.Fatalf("variants = %#v", variants)
	}
}

func TestParseOpenAIVariantsBareArray(t *testing.T) {
	raw := `[{"platform":"X (Twitter)","headline":"h","body":"b","cta":"c"}]`
	variants, err := parseOpenAIVariants(raw)
	if err != nil {
		t.Fatalf("parseOpenAIVariants returned error: %v", err)
	}
	if variants[0].Platform != "X (Twitter)" {
		t.Fatalf("platform = %q", variants[0].Platform)
	}
}

func TestParseOpenAIVariantsRejectsEmptyEnvelope(t *testing.T) {
	if _, err := parseOpenAIVariants(`{"variations":[]}`); err == nil {
		t.Fatal("expected error for empty envelope")
	}
}
