package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/pkg/qr"
)

// modeChoices are the selectable encoding modes.
var modeChoices = []choice{
	{Value: "auto", Label: "Auto", Hint: "densest segmentation for the text"},
	{Value: "numeric", Label: "Numeric", Hint: "digits 0-9 only"},
	{Value: "alphanumeric", Label: "Alphanumeric", Hint: "digits, A-Z, space, $%*+-./:"},
	{Value: "byte", Label: "Byte", Hint: "any text, UTF-8 bytes"},
}

// eccChoices are the selectable error-correction levels.
var eccChoices = []choice{
	{Value: "low", Label: "Low", Hint: "~7% recovery, smallest symbol"},
	{Value: "medium", Label: "Medium", Hint: "~15% recovery"},
	{Value: "quartile", Label: "Quartile", Hint: "~25% recovery"},
	{Value: "high", Label: "High", Hint: "~30% recovery, largest symbol"},
}

// pickCommand creates the pick command for interactive option selection.
func (c *CLI) pickCommand() *cobra.Command {
	opts := encodeOpts{}

	cmd := &cobra.Command{
		Use:   "pick [text]",
		Short: "Interactively choose mode and error correction, then encode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			mode, err := runPicker("Encoding Mode", modeChoices, cfg.Mode)
			if err != nil {
				return err
			}
			if mode == "" {
				printInfo("Cancelled")
				return nil
			}

			ecc, err := runPicker("Error Correction", eccChoices, cfg.Ecc)
			if err != nil {
				return err
			}
			if ecc == "" {
				printInfo("Cancelled")
				return nil
			}

			opts = encodeOpts{
				mode:       mode,
				ecc:        ecc,
				minVersion: qr.MinVersion,
				maxVersion: qr.MaxVersion,
				mask:       qr.MaskAuto,
				formats:    parseFormats("", cfg),
				info:       true,
				preview:    true,
			}
			return c.runEncode(cmd, cfg, text, &opts)
		},
	}

	return cmd
}
