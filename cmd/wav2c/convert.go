package cmd

import (
	"fmt"
	"log/slog"

	"github.com/embedkit/wav2c/internal/carray"
	"github.com/embedkit/wav2c/internal/convert"

	"github.com/spf13/cobra"
)

func newConvertCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert input.wav output.h [array_name]",
		Short: "Convert a 16-bit PCM WAV file to an int16_t array header",
		Long: `Convert a 16-bit PCM WAV file to a C header declaring the samples as
an int16_t array plus sample rate, channel count, sample count and
byte size constants. The array name defaults to the input base name
with '-', ' ' and '.' replaced by '_'.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			inputPath, outputPath := args[0], args[1]
			arrayName := carray.BaseIdentifier(inputPath)
			if len(args) == 3 {
				arrayName = args[2]
			}

			f, err := convert.File(inputPath, outputPath, arrayName, opts.Render())
			if err != nil {
				return err
			}

			slog.Info("created", "path", outputPath,
				"array", fmt.Sprintf("%s_data[%d]", arrayName, f.NumSamples()),
				"size", fmt.Sprintf("%.1f KB", float64(f.DataSize)/1024),
			)
			return nil
		},
	}
}
