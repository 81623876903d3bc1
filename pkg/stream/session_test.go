package stream_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/thoughtstream/pkg/llm/provider"
	"github.com/papercomputeco/thoughtstream/pkg/stream"
	"github.com/papercomputeco/thoughtstream/pkg/thought"
)

// chunkJSON wraps a text delta in an OpenAI streaming chunk.
func chunkJSON(text string) string {
	return fmt.Sprintf(`{"choices":[{"delta":{"content":%q}}]}`, text)
}

// sseBody renders deltas as a complete "data: "-framed response body ending
// with the done sentinel.
func sseBody(deltas ...string) string {
	body := ""
	for _, d := range deltas {
		body += "data: " + chunkJSON(d) + "\n\n"
	}
	return body + "data: [DONE]\n\n"
}

type sessionResult struct {
	nodes    []thought.Node
	finished bool
	errMsg   string
}

func runSession(session *stream.Session, prompt string) sessionResult {
	var result sessionResult
	session.Run(context.Background(), prompt, stream.Handlers{
		OnThought: func(node thought.Node) {
			result.nodes = append(result.nodes, node)
		},
		OnFinish: func() { result.finished = true },
		OnError:  func(message string) { result.errMsg = message },
	})
	return result
}

var _ = Describe("Session", func() {
	newSession := func(serverURL string) *stream.Session {
		adapter, err := provider.New(provider.OpenAI, serverURL)
		Expect(err).NotTo(HaveOccurred())

		return stream.NewSession(stream.Config{
			Adapter: adapter,
			ModelID: "gpt-4-mini",
			APIKey:  "sk-test",
		})
	}

	Describe("a successful stream", func() {
		var server *httptest.Server

		BeforeEach(func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer GinkgoRecover()
				Expect(r.URL.Path).To(Equal("/v1/chat/completions"))
				Expect(r.Header.Get("Authorization")).To(Equal("Bearer sk-test"))

				w.Header().Set("Content-Type", "text/event-stream")
				fmt.Fprint(w, sseBody(
					"Let's analyze this.",
					"If the input is valid, proceed.",
					"Therefore the result is 42.",
				))
			}))
			DeferCleanup(server.Close)
		})

		It("emits bootstrap, classified, and no synthetic terminal node", func() {
			result := runSession(newSession(server.URL), "test prompt")

			Expect(result.errMsg).To(BeEmpty())
			Expect(result.finished).To(BeTrue())

			ids := make([]string, 0, len(result.nodes))
			for _, n := range result.nodes {
				ids = append(ids, n.ID)
			}
			Expect(ids).To(Equal([]string{"input-1", "proc-1", "dec-1", "output-1"}))
		})

		It("emits nodes with their classified categories", func() {
			result := runSession(newSession(server.URL), "test prompt")

			Expect(result.nodes[0].Category).To(Equal(thought.CategoryInput))
			Expect(result.nodes[1].Category).To(Equal(thought.CategoryProcessing))
			Expect(result.nodes[2].Category).To(Equal(thought.CategoryDecision))
			Expect(result.nodes[3].Category).To(Equal(thought.CategoryOutput))
		})

		It("finishes in the finished state", func() {
			session := newSession(server.URL)
			runSession(session, "test prompt")
			Expect(session.State()).To(Equal(stream.StateFinished))
		})
	})

	Describe("a stream without output text", func() {
		It("synthesizes the terminal output node", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, sseBody("Thinking about the question.", "Still thinking."))
			}))
			DeferCleanup(server.Close)

			result := runSession(newSession(server.URL), "test prompt")

			Expect(result.finished).To(BeTrue())
			last := result.nodes[len(result.nodes)-1]
			Expect(last.ID).To(Equal("output-1"))
			Expect(last.Text).To(Equal("Completed processing"))
		})
	})

	Describe("an empty stream", func() {
		It("still emits the bootstrap and terminal nodes", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, "data: [DONE]\n\n")
			}))
			DeferCleanup(server.Close)

			result := runSession(newSession(server.URL), "test prompt")

			Expect(result.finished).To(BeTrue())
			Expect(result.nodes).To(HaveLen(2))
			Expect(result.nodes[0].ID).To(Equal("input-1"))
			Expect(result.nodes[1].ID).To(Equal("output-1"))
		})
	})

	Describe("malformed events mid-stream", func() {
		It("skips them and keeps streaming", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, "data: "+chunkJSON("First thought.")+"\n")
				fmt.Fprint(w, "data: {not json\n")
				fmt.Fprint(w, "data: "+chunkJSON("Therefore, done.")+"\n")
				fmt.Fprint(w, "data: [DONE]\n")
			}))
			DeferCleanup(server.Close)

			result := runSession(newSession(server.URL), "test prompt")

			Expect(result.finished).To(BeTrue())
			ids := make([]string, 0, len(result.nodes))
			for _, n := range result.nodes {
				ids = append(ids, n.ID)
			}
			Expect(ids).To(Equal([]string{"input-1", "proc-1", "output-1"}))
		})
	})

	Describe("a missing API key", func() {
		It("fails before any network call with an auth hint", func() {
			adapter, err := provider.New(provider.OpenAI, "http://127.0.0.1:1")
			Expect(err).NotTo(HaveOccurred())

			session := stream.NewSession(stream.Config{
				Adapter: adapter,
				ModelID: "gpt-4-mini",
				APIKey:  "",
			})
			result := runSession(session, "test prompt")

			Expect(result.finished).To(BeFalse())
			Expect(result.nodes).To(BeEmpty())
			Expect(result.errMsg).To(ContainSubstring("thoughtstream auth openai"))
			Expect(session.State()).To(Equal(stream.StateFailed))
		})
	})

	Describe("a rejected request", func() {
		It("emits zero nodes and one translated error", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				fmt.Fprint(w, `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`)
			}))
			DeferCleanup(server.Close)

			session := newSession(server.URL)
			result := runSession(session, "test prompt")

			Expect(result.nodes).To(BeEmpty())
			Expect(result.finished).To(BeFalse())
			Expect(result.errMsg).To(ContainSubstring("quota exceeded"))
			Expect(session.State()).To(Equal(stream.StateFailed))
		})
	})

	Describe("an unreachable server", func() {
		It("fails with a transport message", func() {
			session := newSession("http://127.0.0.1:1")
			result := runSession(session, "test prompt")

			Expect(result.finished).To(BeFalse())
			Expect(result.errMsg).To(ContainSubstring("Failed to connect"))
		})
	})

	Describe("nil handlers", func() {
		It("does not panic", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, sseBody("A thought."))
			}))
			DeferCleanup(server.Close)

			session := newSession(server.URL)
			Expect(func() {
				session.Run(context.Background(), "test prompt", stream.Handlers{})
			}).NotTo(Panic())
			Expect(session.State()).To(Equal(stream.StateFinished))
		})
	})

	Describe("session identity", func() {
		It("assigns each session a unique id", func() {
			first := newSession("http://127.0.0.1:1")
			second := newSession("http://127.0.0.1:1")
			Expect(first.ID()).NotTo(BeEmpty())
			Expect(first.ID()).NotTo(Equal(second.ID()))
		})

		It("starts idle", func() {
			Expect(newSession("http://127.0.0.1:1").State()).To(Equal(stream.StateIdle))
		})
	})
})
