// Package configcmder provides the config command for managing persistent
// thoughtstream configuration stored in the .thoughtstream/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent thoughtstream configuration.

Configuration is stored as config.toml in the .thoughtstream/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  stream.model, stream.provider,
  provider.openai_base_url, provider.anthropic_base_url,
  play.speed

Use subcommands to get, set, or list configuration values:
  thoughtstream config set <key> <value>    Set a configuration value
  thoughtstream config get <key>            Get a configuration value
  thoughtstream config list                 List all configuration values

Examples:
  thoughtstream config set stream.model claude-3-sonnet
  thoughtstream config set provider.anthropic_base_url https://api.anthropic.com
  thoughtstream config get stream.model
  thoughtstream config list`

const configShortDesc string = "Manage persistent thoughtstream configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
