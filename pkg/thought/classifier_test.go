package thought_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/thoughtstream/pkg/thought"
)

var _ = Describe("Classifier", func() {
	var c *thought.Classifier

	BeforeEach(func() {
		c = thought.NewClassifier()
		c.Clock = func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}
	})

	Describe("Bootstrap", func() {
		It("produces the synthetic input node at the origin", func() {
			node := c.Bootstrap()
			Expect(node.ID).To(Equal("input-1"))
			Expect(node.Category).To(Equal(thought.CategoryInput))
			Expect(node.Text).To(Equal("Processing request..."))
			Expect(node.Connections).To(Equal([]string{"proc-1"}))
			Expect(node.X).To(Equal(50.0))
			Expect(node.Y).To(Equal(50.0))
		})

		It("stamps the node with the clock", func() {
			node := c.Bootstrap()
			Expect(node.CreatedAt).To(Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
		})
	})

	Describe("Classify", func() {
		Context("with decision keywords", func() {
			It("classifies 'if' text as a decision node", func() {
				node, ok := c.Classify("If the input is valid, proceed.")
				Expect(ok).To(BeTrue())
				Expect(node.ID).To(Equal("dec-1"))
				Expect(node.Category).To(Equal(thought.CategoryDecision))
			})

			It("classifies 'consider' text as a decision node", func() {
				node, ok := c.Classify("Consider the alternatives here.")
				Expect(ok).To(BeTrue())
				Expect(node.Category).To(Equal(thought.CategoryDecision))
			})

			It("classifies 'decide' text as a decision node", func() {
				node, ok := c.Classify("We must decide soon.")
				Expect(ok).To(BeTrue())
				Expect(node.Category).To(Equal(thought.CategoryDecision))
			})

			It("matches keywords case-insensitively", func() {
				node, ok := c.Classify("IF ALL ELSE FAILS")
				Expect(ok).To(BeTrue())
				Expect(node.Category).To(Equal(thought.CategoryDecision))
			})

			It("matches keywords as substrings", func() {
				// "notify" contains "if"
				node, ok := c.Classify("We should notify the user.")
				Expect(ok).To(BeTrue())
				Expect(node.Category).To(Equal(thought.CategoryDecision))
			})

			It("connects a decision to the next processing node", func() {
				_, ok := c.Classify("Analyzing the problem space.")
				Expect(ok).To(BeTrue())

				node, ok := c.Classify("If that holds, we are done.")
				Expect(ok).To(BeTrue())
				Expect(node.Connections).To(Equal([]string{"proc-2"}))
			})
		})

		Context("with output keywords", func() {
			It("classifies 'result' text as an output node", func() {
				node, ok := c.Classify("The result is 42.")
				Expect(ok).To(BeTrue())
				Expect(node.ID).To(Equal("output-1"))
				Expect(node.Category).To(Equal(thought.CategoryOutput))
			})

			It("classifies 'conclusion' text as an output node", func() {
				node, ok := c.Classify("In conclusion, it works.")
				Expect(ok).To(BeTrue())
				Expect(node.Category).To(Equal(thought.CategoryOutput))
			})

			It("produces output nodes with no connections", func() {
				node, ok := c.Classify("Therefore we are finished.")
				Expect(ok).To(BeTrue())
				Expect(node.Connections).To(BeEmpty())
			})

			It("prefers decision over output when both match", func() {
				node, ok := c.Classify("If so, the result follows.")
				Expect(ok).To(BeTrue())
				Expect(node.Category).To(Equal(thought.CategoryDecision))
			})
		})

		Context("with plain text", func() {
			It("classifies as a processing node", func() {
				node, ok := c.Classify("Analyzing the key concepts.")
				Expect(ok).To(BeTrue())
				Expect(node.ID).To(Equal("proc-1"))
				Expect(node.Category).To(Equal(thought.CategoryProcessing))
			})

			It("chains processing nodes forward", func() {
				node, ok := c.Classify("Breaking down the problem.")
				Expect(ok).To(BeTrue())
				Expect(node.Connections).To(Equal([]string{"proc-2"}))
			})

			It("points every third processing node at the decision counter", func() {
				deltas := []string{
					"Gathering context.",
					"Mapping dependencies.",
					"Evaluating options.",
				}
				var nodes []thought.Node
				for _, d := range deltas {
					node, ok := c.Classify(d)
					Expect(ok).To(BeTrue())
					nodes = append(nodes, node)
				}

				Expect(nodes[0].Connections).To(Equal([]string{"proc-2"}))
				Expect(nodes[1].Connections).To(Equal([]string{"proc-3"}))
				Expect(nodes[2].ID).To(Equal("proc-3"))
				Expect(nodes[2].Connections).To(Equal([]string{"dec-1"}))
			})

			It("may reference a decision node that is never created", func() {
				// The dec-1 back-reference stays dangling when the stream
				// contains no decision text at all. Sinks tolerate this.
				for range 2 {
					_, ok := c.Classify("Working through details.")
					Expect(ok).To(BeTrue())
				}
				node, ok := c.Classify("Assembling the pieces.")
				Expect(ok).To(BeTrue())
				Expect(node.Connections).To(Equal([]string{"dec-1"}))
			})
		})

		Context("with empty or whitespace deltas", func() {
			It("skips empty deltas without producing a node", func() {
				_, ok := c.Classify("")
				Expect(ok).To(BeFalse())
			})

			It("skips whitespace-only deltas", func() {
				_, ok := c.Classify("  \n\t ")
				Expect(ok).To(BeFalse())
			})

			It("does not advance layout or counters on skipped deltas", func() {
				_, ok := c.Classify("   ")
				Expect(ok).To(BeFalse())

				node, ok := c.Classify("First real thought.")
				Expect(ok).To(BeTrue())
				Expect(node.ID).To(Equal("proc-1"))
				Expect(node.X).To(Equal(200.0))
				Expect(node.Y).To(Equal(20.0))
			})

			It("trims surrounding whitespace from node text", func() {
				node, ok := c.Classify("  padded thought  ")
				Expect(ok).To(BeTrue())
				Expect(node.Text).To(Equal("padded thought"))
			})
		})

		Context("layout", func() {
			It("advances x by a fixed step per node", func() {
				first, _ := c.Classify("one step")
				second, _ := c.Classify("two steps")
				Expect(first.X).To(Equal(200.0))
				Expect(second.X).To(Equal(350.0))
			})

			It("zigzags y by emission parity", func() {
				first, _ := c.Classify("step down")
				second, _ := c.Classify("step up")
				third, _ := c.Classify("step down again")

				Expect(first.Y).To(Equal(20.0))
				Expect(second.Y).To(Equal(90.0))
				Expect(third.Y).To(Equal(60.0))
			})
		})

		It("assigns unique ids across categories", func() {
			deltas := []string{
				"Analyzing the request.",
				"If the premise holds, continue.",
				"Checking assumptions.",
				"Therefore the answer emerges.",
				"Consider the edge cases.",
			}

			seen := map[string]bool{}
			for _, d := range deltas {
				node, ok := c.Classify(d)
				Expect(ok).To(BeTrue())
				Expect(seen[node.ID]).To(BeFalse(), "duplicate id %s", node.ID)
				seen[node.ID] = true
			}
		})
	})

	Describe("Finalize", func() {
		It("synthesizes a terminal output node when none was emitted", func() {
			_, ok := c.Classify("Just thinking out loud.")
			Expect(ok).To(BeTrue())

			node, ok := c.Finalize()
			Expect(ok).To(BeTrue())
			Expect(node.ID).To(Equal("output-1"))
			Expect(node.Text).To(Equal("Completed processing"))
			Expect(node.Category).To(Equal(thought.CategoryOutput))
			Expect(node.Connections).To(BeEmpty())
		})

		It("places the terminal node one step past the cursor", func() {
			_, _ = c.Classify("Positioning check.")

			node, ok := c.Finalize()
			Expect(ok).To(BeTrue())
			Expect(node.X).To(Equal(350.0))
			Expect(node.Y).To(Equal(20.0))
		})

		It("returns false when an output node was already emitted", func() {
			_, ok := c.Classify("Therefore we conclude.")
			Expect(ok).To(BeTrue())

			_, ok = c.Finalize()
			Expect(ok).To(BeFalse())
		})

		It("synthesizes from the origin for an empty stream", func() {
			node, ok := c.Finalize()
			Expect(ok).To(BeTrue())
			Expect(node.X).To(Equal(200.0))
			Expect(node.Y).To(Equal(50.0))
		})
	})
})
