// Package modelscmder provides the models command for listing the model
// catalog.
package modelscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/thoughtstream/pkg/cliui"
	"github.com/papercomputeco/thoughtstream/pkg/llm/provider"
)

const modelsLongDesc string = `List the models available for thought streaming.

Each model resolves to one provider adapter. Models without a native
backend fall back to the OpenAI adapter with a default wire model.

Examples:
  thoughtstream models`

const modelsShortDesc string = "List available models"

func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: modelsShortDesc,
		Long:  modelsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runModels()
		},
	}

	return cmd
}

func runModels() error {
	models := provider.PredefinedModels()

	maxLen := 0
	for _, m := range models {
		if len(m.ID) > maxLen {
			maxLen = len(m.ID)
		}
	}

	fmt.Printf("\n  %s\n\n", cliui.HeaderStyle.Render("Available models"))
	for _, m := range models {
		padded := fmt.Sprintf("%-*s", maxLen, m.ID)
		fmt.Printf("  %s  %s %s\n",
			cliui.NameStyle.Render(padded),
			cliui.DimStyle.Render("("+m.Provider+")"),
			m.Description,
		)
	}
	fmt.Println()

	return nil
}
