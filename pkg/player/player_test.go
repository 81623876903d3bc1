package player_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/thoughtstream/pkg/player"
	"github.com/papercomputeco/thoughtstream/pkg/thought"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sequence() []thought.Node {
	return []thought.Node{
		{ID: "input-1", CreatedAt: base},
		{ID: "proc-1", CreatedAt: base.Add(1 * time.Second)},
		{ID: "dec-1", CreatedAt: base.Add(2 * time.Second)},
		{ID: "output-1", CreatedAt: base.Add(4 * time.Second)},
	}
}

var _ = Describe("Player", func() {
	var p *player.Player

	BeforeEach(func() {
		p = player.New(sequence())
	})

	It("starts paused at the first node", func() {
		Expect(p.Playing()).To(BeFalse())
		Expect(p.Now()).To(Equal(base))
		Expect(p.Visible()).To(HaveLen(1))
	})

	Describe("Toggle", func() {
		It("flips between playing and paused", func() {
			p.Toggle()
			Expect(p.Playing()).To(BeTrue())
			p.Toggle()
			Expect(p.Playing()).To(BeFalse())
		})

		It("restarts from the beginning when toggled at the end", func() {
			p.Seek(p.End())
			p.Toggle()
			Expect(p.Playing()).To(BeTrue())
			Expect(p.Now()).To(Equal(p.Start()))
		})
	})

	Describe("Advance", func() {
		It("moves the clock only while playing", func() {
			p.Advance(time.Second)
			Expect(p.Now()).To(Equal(base))

			p.Toggle()
			p.Advance(time.Second)
			Expect(p.Now()).To(Equal(base.Add(time.Second)))
		})

		It("reveals nodes as the clock passes their timestamps", func() {
			p.Toggle()
			p.Advance(2 * time.Second)

			visible := p.Visible()
			Expect(visible).To(HaveLen(3))
			Expect(visible[2].ID).To(Equal("dec-1"))
		})

		It("clamps at the end and pauses", func() {
			p.Toggle()
			p.Advance(time.Hour)

			Expect(p.Now()).To(Equal(p.End()))
			Expect(p.Playing()).To(BeFalse())
			Expect(p.Visible()).To(HaveLen(4))
		})
	})

	Describe("Seek", func() {
		It("clamps below the start", func() {
			p.Seek(base.Add(-time.Minute))
			Expect(p.Now()).To(Equal(p.Start()))
		})

		It("clamps past the end", func() {
			p.Seek(base.Add(time.Minute))
			Expect(p.Now()).To(Equal(p.End()))
		})

		It("moves to an arbitrary position", func() {
			p.Seek(base.Add(1500 * time.Millisecond))
			Expect(p.Visible()).To(HaveLen(2))
		})
	})

	Describe("Reset", func() {
		It("pauses and rewinds", func() {
			p.Toggle()
			p.Advance(3 * time.Second)
			p.Reset()

			Expect(p.Playing()).To(BeFalse())
			Expect(p.Now()).To(Equal(p.Start()))
			Expect(p.Visible()).To(HaveLen(1))
		})
	})

	Describe("Progress", func() {
		It("reports the position as a fraction", func() {
			Expect(p.Progress()).To(BeNumerically("==", 0))
			p.Seek(base.Add(2 * time.Second))
			Expect(p.Progress()).To(BeNumerically("==", 0.5))
			p.Seek(p.End())
			Expect(p.Progress()).To(BeNumerically("==", 1))
		})

		It("reports 1 for a zero-duration sequence", func() {
			single := player.New([]thought.Node{{ID: "input-1", CreatedAt: base}})
			Expect(single.Progress()).To(BeNumerically("==", 1))
		})
	})

	Describe("an empty sequence", func() {
		It("is safe to drive", func() {
			empty := player.New(nil)
			Expect(empty.Len()).To(BeZero())
			Expect(empty.Visible()).To(BeEmpty())
			empty.Toggle()
			empty.Advance(time.Second)
			Expect(empty.Visible()).To(BeEmpty())
		})
	})
})

var _ = Describe("Recording", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "player-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("round-trips through Save and Load", func() {
		rec := &player.Recording{
			Prompt:     "why is the sky blue?",
			ModelID:    "gpt-4-mini",
			Provider:   "openai",
			RecordedAt: base,
			Nodes:      sequence(),
		}

		path := filepath.Join(tmpDir, "session.json")
		Expect(rec.Save(path)).To(Succeed())

		loaded, err := player.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Prompt).To(Equal(rec.Prompt))
		Expect(loaded.Provider).To(Equal("openai"))
		Expect(loaded.Nodes).To(HaveLen(4))
		Expect(loaded.Nodes[3].ID).To(Equal("output-1"))
	})

	It("errors on a missing file", func() {
		_, err := player.Load(filepath.Join(tmpDir, "absent.json"))
		Expect(err).To(HaveOccurred())
	})

	It("errors on malformed JSON", func() {
		path := filepath.Join(tmpDir, "bad.json")
		Expect(os.WriteFile(path, []byte("{broken"), 0o644)).To(Succeed())

		_, err := player.Load(path)
		Expect(err).To(HaveOccurred())
	})
})
