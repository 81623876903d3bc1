package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/thoughtstream/pkg/llm"
	"github.com/papercomputeco/thoughtstream/pkg/llm/provider"
	"github.com/papercomputeco/thoughtstream/pkg/llm/provider/anthropic"
)

var _ = Describe("Anthropic Adapter", func() {
	var a provider.Adapter

	BeforeEach(func() {
		a = anthropic.New("")
	})

	Describe("Name", func() {
		It("returns 'anthropic'", func() {
			Expect(a.Name()).To(Equal("anthropic"))
		})
	})

	Describe("ResolveModel", func() {
		It("maps catalog ids to dated wire models", func() {
			Expect(a.ResolveModel("claude-3-sonnet")).To(Equal("claude-3-sonnet-20240229"))
			Expect(a.ResolveModel("claude-3-opus")).To(Equal("claude-3-opus-20240229"))
			Expect(a.ResolveModel("claude-3-haiku")).To(Equal("claude-3-haiku-20240307"))
		})

		It("falls back to the default wire model for unknown ids", func() {
			Expect(a.ResolveModel("claude-9")).To(Equal("claude-3-sonnet-20240229"))
		})
	})

	Describe("BuildRequest", func() {
		It("targets the messages endpoint", func() {
			req, err := a.BuildRequest(context.Background(), "hello", "claude-3-sonnet-20240229", "sk-ant")
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Method).To(Equal(http.MethodPost))
			Expect(req.URL.String()).To(Equal("https://api.anthropic.com/v1/messages"))
		})

		It("sets the api key and version headers", func() {
			req, err := a.BuildRequest(context.Background(), "hello", "claude-3-sonnet-20240229", "sk-ant")
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Header.Get("x-api-key")).To(Equal("sk-ant"))
			Expect(req.Header.Get("anthropic-version")).To(Equal("2023-06-01"))
			Expect(req.Header.Get("Content-Type")).To(Equal("application/json"))
		})

		It("carries the system prompt at the top level, not as a message", func() {
			req, err := a.BuildRequest(context.Background(), "explain monads", "claude-3-opus-20240229", "sk-ant")
			Expect(err).NotTo(HaveOccurred())

			raw, err := io.ReadAll(req.Body)
			Expect(err).NotTo(HaveOccurred())

			var body map[string]any
			Expect(json.Unmarshal(raw, &body)).To(Succeed())
			Expect(body["system"]).NotTo(BeEmpty())
			Expect(body["stream"]).To(BeTrue())
			Expect(body["temperature"]).To(BeNumerically("==", 0.7))
			Expect(body["max_tokens"]).To(BeNumerically("==", 1000))

			messages := body["messages"].([]any)
			Expect(messages).To(HaveLen(1))
			user := messages[0].(map[string]any)
			Expect(user["role"]).To(Equal("user"))
			Expect(user["content"]).To(Equal("explain monads"))
		})
	})

	Describe("ExtractDelta", func() {
		It("extracts text from a content block delta", func() {
			data := `{"type":"content_block_delta","delta":{"type":"text_delta","text":"Hello"}}`
			delta, err := a.ExtractDelta(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(delta).To(Equal("Hello"))
		})

		It("yields an empty delta for non-delta events", func() {
			delta, err := a.ExtractDelta(`{"type":"message_start"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(delta).To(BeEmpty())
		})

		It("yields an empty delta for ping events", func() {
			delta, err := a.ExtractDelta(`{"type":"ping"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(delta).To(BeEmpty())
		})

		It("errors on malformed JSON", func() {
			_, err := a.ExtractDelta("{truncated")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("TranslateError", func() {
		It("recognizes authentication failures", func() {
			body := []byte(`{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
			err := a.TranslateError(http.StatusUnauthorized, body)
			Expect(errors.Is(err, llm.ErrAuthentication)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Claude API key"))
		})

		It("recognizes rate limiting as quota exhaustion", func() {
			body := []byte(`{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`)
			err := a.TranslateError(http.StatusTooManyRequests, body)
			Expect(errors.Is(err, llm.ErrQuotaExceeded)).To(BeTrue())
		})

		It("surfaces the provider message for other structured errors", func() {
			body := []byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`)
			err := a.TranslateError(http.StatusServiceUnavailable, body)
			Expect(err.Error()).To(Equal("Overloaded"))
		})

		It("falls back to the status code for unstructured bodies", func() {
			err := a.TranslateError(http.StatusInternalServerError, []byte("oops"))
			Expect(err.Error()).To(Equal("API error: 500"))
		})
	})
})
