package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/embedkit/wav2c/internal/config"
	"github.com/embedkit/wav2c/internal/log"

	"github.com/spf13/cobra"
)

// ExecuteContext runs the root command with all subcommands attached.
func ExecuteContext(ctx context.Context, version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.ExecuteContext(ctx)
}

type rootFlags struct {
	configPath   string
	storageClass string
	quiet        bool
}

func newRootCmd(version string) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Version: version,
		Use:     "wav2c",
		Short:   "Convert WAV files to C array headers",
		Long: `Convert uncompressed PCM WAV files to C headers declaring the audio
samples as static arrays, for embedding into microcontroller flash.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if flags.quiet {
				level = slog.LevelWarn
			}
			slog.SetDefault(slog.New(log.NewMsgHandler(cmd.OutOrStdout(), level)))
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to an options yaml file (see 'wav2c example')")
	rootCmd.PersistentFlags().StringVar(&flags.storageClass, "storage-class", "", "storage-class token emitted on generated declarations, overrides the options file")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only print warnings")

	rootCmd.AddCommand(
		newConvertCmd(flags),
		newConvertAllCmd(flags),
		newRawCmd(flags),
		newExampleCmd(),
		newManCmd(rootCmd),
	)

	return rootCmd
}

// options resolves the effective options: defaults, then the options
// file, then flag overrides.
func (f *rootFlags) options(cmd *cobra.Command) (*config.Options, error) {
	opts := config.Default()

	if f.configPath != "" {
		file, err := os.Open(f.configPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = file.Close()
		}()
		opts, err = config.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.configPath, err)
		}
	}

	if cmd.Flags().Changed("storage-class") {
		opts.StorageClass = f.storageClass
		if err := opts.Validate(); err != nil {
			return nil, err
		}
	}

	return opts, nil
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "example",
		Short:             "Print example options yaml",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.Example())
			return err
		},
	}
}
