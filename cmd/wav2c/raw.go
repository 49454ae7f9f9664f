package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/embedkit/wav2c/internal/carray"
	"github.com/embedkit/wav2c/internal/convert"

	"github.com/spf13/cobra"
)

const (
	// Above this size the user must confirm, the embedded array blows
	// up the firmware binary one byte per input byte.
	rawPromptSize = 2 * 1024 * 1024

	// Flash capacity of the target boards.
	rawMaxSize = 16 * 1024 * 1024
)

var errCancelled = errors.New("conversion cancelled")

func newRawCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "raw input.wav [output.h] [variable_name]",
		Short: "Embed a whole WAV file as a uint8_t hex array header",
		Long: `Embed the entire WAV file, header included, as a uint8_t hex array.
The output path defaults to <input base name>_data.h.

All raw headers share the ` + carray.RawGuard + ` include guard, so only one of
them can be included per translation unit.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}

			inputPath := args[0]
			info, err := os.Stat(inputPath)
			if err != nil {
				return err
			}
			size := info.Size()

			slog.Info("processing", "path", inputPath,
				"size", fmt.Sprintf("%.2f MB", float64(size)/(1024*1024)))

			if size > rawMaxSize {
				return fmt.Errorf("%s: %.2f MB does not fit in 16 MB flash",
					inputPath, float64(size)/(1024*1024))
			}
			if size > rawPromptSize {
				slog.Warn("file is very large, the firmware binary will be huge")
				ok, err := confirm(cmd)
				if err != nil {
					return err
				}
				if !ok {
					return errCancelled
				}
			}

			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			outputPath := base + "_data.h"
			if len(args) >= 2 {
				outputPath = args[1]
			}
			varName := carray.Identifier(base)
			if len(args) == 3 {
				varName = args[2]
			}

			if _, err := convert.RawFile(inputPath, outputPath, varName, opts.Render()); err != nil {
				return err
			}

			slog.Info("created", "path", outputPath)
			return nil
		},
	}
}

func confirm(cmd *cobra.Command) (bool, error) {
	_, err := fmt.Fprint(cmd.OutOrStdout(), "Continue? (yes/no): ")
	if err != nil {
		return false, err
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}
