// Package thoughtstreamcmder
package thoughtstreamcmder

import (
	"github.com/spf13/cobra"

	authcmder "github.com/papercomputeco/thoughtstream/cmd/thoughtstream/auth"
	configcmder "github.com/papercomputeco/thoughtstream/cmd/thoughtstream/config"
	modelscmder "github.com/papercomputeco/thoughtstream/cmd/thoughtstream/models"
	playcmder "github.com/papercomputeco/thoughtstream/cmd/thoughtstream/play"
	streamcmder "github.com/papercomputeco/thoughtstream/cmd/thoughtstream/stream"
	versioncmder "github.com/papercomputeco/thoughtstream/cmd/version"
)

const thoughtstreamLongDesc string = `Thoughtstream visualizes a model's reasoning as a live thought graph.

Stream a prompt through a provider and watch classified thought nodes
appear in real time, then replay the session on a timeline:
  thoughtstream stream "why is the sky blue?"
  thoughtstream play session.json

Store provider credentials first:
  thoughtstream auth openai`

const thoughtstreamShortDesc string = "Thoughtstream - Streaming Thought Visualizer"

func NewThoughtstreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thoughtstream",
		Short: thoughtstreamShortDesc,
		Long:  thoughtstreamLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .thoughtstream/ config directory")

	// Add subcommands
	cmd.AddCommand(authcmder.NewAuthCmd())
	cmd.AddCommand(modelscmder.NewModelsCmd())
	cmd.AddCommand(streamcmder.NewStreamCmd())
	cmd.AddCommand(playcmder.NewPlayCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
