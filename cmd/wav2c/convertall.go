package cmd

import (
	"github.com/embedkit/wav2c/internal/batch"

	"github.com/spf13/cobra"
)

func newConvertAllCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "convert-all input_dir output_dir",
		Short: "Convert every WAV file in a directory and stitch a master header",
		Long: `Convert every *.wav file in input_dir to an int16_t array header in
output_dir, then write ` + batch.MasterHeaderName + ` including all generated
headers and declaring parallel arrays of data pointers, sample counts,
channel counts and filenames. Files that fail to convert are skipped
with a warning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return batch.Run(args[0], args[1], opts)
		},
	}
}
