// Package playcmder provides the play command for replaying recorded
// streaming sessions in a terminal timeline.
package playcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/thoughtstream/pkg/config"
	"github.com/papercomputeco/thoughtstream/pkg/player"
)

const playLongDesc string = `Replay a recorded streaming session.

Loads a recording written by 'thoughtstream stream --output' and replays
its thought nodes on a virtual timeline. Nodes appear in their original
emission order at their original relative timing, scaled by the playback
speed.

Keys:
  space        play / pause
  left/right   step the clock backward / forward
  r            restart from the beginning
  q            quit

Examples:
  thoughtstream play session.json
  thoughtstream play -s 2.0 session.json`

const playShortDesc string = "Replay a recorded streaming session"

func NewPlayCmd() *cobra.Command {
	var speed float64
	flagSet := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "play <recording>",
		Short: playShortDesc,
		Long:  playLongDesc,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			config.BindRegisteredFlags(v, cmd, flagSet, []string{config.FlagSpeed})
			speed = v.GetFloat64("play.speed")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if speed <= 0 {
				return fmt.Errorf("playback speed must be positive, got %v", speed)
			}

			rec, err := player.Load(args[0])
			if err != nil {
				return err
			}

			return runPlayTUI(cmd.Context(), rec, speed)
		},
	}

	config.AddFloat64Flag(cmd, flagSet, config.FlagSpeed, &speed)

	return cmd
}
