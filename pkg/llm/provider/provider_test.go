package provider_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/thoughtstream/pkg/llm/provider"
)

var _ = Describe("New", func() {
	It("creates an OpenAI adapter", func() {
		adapter, err := provider.New(provider.OpenAI, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(adapter.Name()).To(Equal("openai"))
	})

	It("creates an Anthropic adapter", func() {
		adapter, err := provider.New(provider.Anthropic, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(adapter.Name()).To(Equal("anthropic"))
	})

	It("rejects unknown provider types", func() {
		_, err := provider.New("mistral", "")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unknown provider type"))
	})
})

var _ = Describe("SupportedProviders", func() {
	It("lists openai and anthropic", func() {
		Expect(provider.SupportedProviders()).To(Equal([]string{"openai", "anthropic"}))
	})
})

var _ = Describe("PredefinedModels", func() {
	It("includes the built-in catalog", func() {
		models := provider.PredefinedModels()
		ids := make([]string, 0, len(models))
		for _, m := range models {
			ids = append(ids, m.ID)
		}
		Expect(ids).To(ContainElements(
			"gpt-4-mini", "gpt-4",
			"claude-3-sonnet", "claude-3-opus", "claude-3-haiku",
			"gemini-pro",
		))
	})

	It("returns a copy the caller can mutate safely", func() {
		models := provider.PredefinedModels()
		models[0].ID = "mutated"
		Expect(provider.PredefinedModels()[0].ID).NotTo(Equal("mutated"))
	})
})

var _ = Describe("ForModel", func() {
	It("resolves catalog models to their provider", func() {
		Expect(provider.ForModel("claude-3-opus").Provider).To(Equal(provider.Anthropic))
		Expect(provider.ForModel("gpt-4").Provider).To(Equal(provider.OpenAI))
	})

	It("routes models without a native backend to openai", func() {
		Expect(provider.ForModel("gemini-pro").Provider).To(Equal(provider.OpenAI))
	})

	It("passes unknown ids through to openai", func() {
		info := provider.ForModel("my-custom-model")
		Expect(info.ID).To(Equal("my-custom-model"))
		Expect(info.Provider).To(Equal(provider.OpenAI))
	})
})
