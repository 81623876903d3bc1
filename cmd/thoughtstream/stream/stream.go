// Package streamcmder provides the stream command for running one
// generation session and watching the thought graph form live.
package streamcmder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/thoughtstream/pkg/cliui"
	"github.com/papercomputeco/thoughtstream/pkg/config"
	"github.com/papercomputeco/thoughtstream/pkg/credentials"
	"github.com/papercomputeco/thoughtstream/pkg/graph"
	"github.com/papercomputeco/thoughtstream/pkg/llm/provider"
	"github.com/papercomputeco/thoughtstream/pkg/logger"
	"github.com/papercomputeco/thoughtstream/pkg/player"
	"github.com/papercomputeco/thoughtstream/pkg/stream"
	"github.com/papercomputeco/thoughtstream/pkg/thought"
	"github.com/papercomputeco/thoughtstream/pkg/utils"
)

const streamLongDesc string = `Stream a prompt through an LLM provider and watch the thought graph form.

Each streamed text delta is classified into a thought node (input,
processing, decision, or output) and printed as it is emitted. Connections
may reference nodes that arrive later; they are resolved as the graph
fills in.

The session requires a stored API key for the resolved provider
(see 'thoughtstream auth') or the provider's environment variable.

Examples:
  thoughtstream stream "why is the sky blue?"
  thoughtstream stream -m claude-3-opus "explain monads"
  thoughtstream stream -m gpt-4 -o session.json "plan a trip"`

const streamShortDesc string = "Stream a prompt and build its thought graph live"

type streamCommander struct {
	model      string
	providerID string
	output     string
	logFile    string
	debug      bool

	openaiBaseURL    string
	anthropicBaseURL string

	logger *slog.Logger
}

func NewStreamCmd() *cobra.Command {
	cmder := &streamCommander{}
	flagSet := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "stream <prompt>",
		Short: streamShortDesc,
		Long:  streamLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, flagSet, []string{config.FlagModel, config.FlagProvider})

			cmder.model = v.GetString("stream.model")
			cmder.providerID = v.GetString("stream.provider")
			cmder.openaiBaseURL = v.GetString("provider.openai_base_url")
			cmder.anthropicBaseURL = v.GetString("provider.anthropic_base_url")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			configDir, _ := cmd.Flags().GetString("config-dir")

			return cmder.run(cmd.Context(), args[0], configDir)
		},
	}

	config.AddStringFlag(cmd, flagSet, config.FlagModel, &cmder.model)
	config.AddStringFlag(cmd, flagSet, config.FlagProvider, &cmder.providerID)
	cmd.Flags().StringVarP(&cmder.output, "output", "o", "", "Write the recorded session to a JSON file")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also write JSON logs to a file")

	return cmd
}

func (c *streamCommander) run(ctx context.Context, prompt, configDir string) error {
	if err := c.setupLogger(); err != nil {
		return err
	}

	providerID := c.providerID
	if providerID == "" {
		providerID = provider.ForModel(c.model).Provider
	}

	adapter, err := provider.New(providerID, c.baseURLFor(providerID))
	if err != nil {
		return err
	}

	credMgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	apiKey, err := credMgr.ResolveKey(providerID)
	if err != nil {
		return err
	}

	fmt.Printf("\n  %s %s %s\n\n",
		cliui.KeyStyle.Render("Model:"),
		cliui.NameStyle.Render(c.model),
		cliui.DimStyle.Render("via "+providerID),
	)

	session := stream.NewSession(stream.Config{
		Adapter: adapter,
		ModelID: c.model,
		APIKey:  apiKey,
		Logger:  c.logger,
	})

	g := graph.New()
	var nodes []thought.Node
	var sessionErr error
	start := time.Now()

	session.Run(ctx, prompt, stream.Handlers{
		OnThought: func(node thought.Node) {
			g.Add(node)
			nodes = append(nodes, node)
			printNode(node)
		},
		OnFinish: func() {
			fmt.Printf("\n  %s Session finished %s\n",
				cliui.SuccessMark,
				cliui.DimStyle.Render(fmt.Sprintf(
					"(%d nodes, %d edges, %d unresolved, %s)",
					g.Len(), len(g.Edges()), len(g.Unresolved()),
					cliui.FormatDuration(time.Since(start)),
				)),
			)
			if unresolved := g.Unresolved(); len(unresolved) > 0 {
				fmt.Printf("  %s %s\n",
					cliui.WarnStyle.Render("!"),
					cliui.DimStyle.Render(fmt.Sprintf(
						"%d connections point at nodes that never arrived", len(unresolved),
					)),
				)
			}
		},
		OnError: func(message string) {
			sessionErr = errors.New(message)
		},
	})

	if sessionErr != nil {
		return sessionErr
	}

	if c.output != "" {
		rec := &player.Recording{
			Prompt:     prompt,
			ModelID:    c.model,
			Provider:   providerID,
			RecordedAt: start,
			Nodes:      nodes,
		}
		if err := rec.Save(c.output); err != nil {
			return err
		}
		fmt.Printf("  %s Saved recording to %s\n",
			cliui.SuccessMark,
			cliui.NameStyle.Render(c.output),
		)
	}

	fmt.Println()

	return nil
}

// setupLogger builds the session logger: pretty output to stderr, plus JSON
// to --log-file when set.
func (c *streamCommander) setupLogger() error {
	pretty := logger.New(
		logger.WithPretty(true),
		logger.WithDebug(c.debug),
		logger.WithWriter(os.Stderr),
	)

	if c.logFile == "" {
		c.logger = pretty
		return nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	jsonLogger := logger.New(
		logger.WithJSON(true),
		logger.WithDebug(c.debug),
		logger.WithWriter(f),
	)

	c.logger = logger.Multi(pretty, jsonLogger)

	return nil
}

func (c *streamCommander) baseURLFor(providerID string) string {
	switch providerID {
	case provider.OpenAI:
		return c.openaiBaseURL
	case provider.Anthropic:
		return c.anthropicBaseURL
	default:
		return ""
	}
}

func printNode(node thought.Node) {
	style := cliui.CategoryStyle(node.Category)
	fmt.Printf("  %s %s %s\n",
		style.Render(fmt.Sprintf("%-10s", node.ID)),
		cliui.DimStyle.Render(fmt.Sprintf("%-10s", string(node.Category))),
		utils.Truncate(node.Text, 80),
	)
}
