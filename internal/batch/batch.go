package batch

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/embedkit/wav2c/internal/carray"
	"github.com/embedkit/wav2c/internal/config"
	"github.com/embedkit/wav2c/internal/convert"
)

// MasterHeaderName is the aggregate header written next to the
// per-file headers.
const MasterHeaderName = "audio_data.h"

// flashWarnSize leaves headroom below the 16 MB flash of the target
// boards for the firmware itself.
const flashWarnSize = 15 * 1024 * 1024

// Record is the per-file bookkeeping of one successful conversion.
type Record struct {
	Filename  string
	ArrayName string
	Header    string
	Size      int64
}

// Run converts every WAV file in inputDir into a header in outputDir
// and stitches the master header. A file that fails to convert is
// logged and skipped; it does not abort the run.
func Run(inputDir, outputDir string, cfg *config.Options) error {
	info, err := os.Stat(inputDir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	names, err := listWavFiles(inputDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		slog.Info(fmt.Sprintf("no WAV files found in %s", inputDir))
		return nil
	}
	slog.Info(fmt.Sprintf("found %d WAV files", len(names)))

	opts := cfg.Render()

	var converted []Record
	var totalSize int64
	for i, name := range names {
		slog.Info(fmt.Sprintf("[%d/%d]", i+1, len(names)), "file", name)

		base := strings.TrimSuffix(name, filepath.Ext(name))
		arrayName := cfg.NamePrefix + carray.Identifier(base)
		header := cfg.NamePrefix + base + ".h"

		inputPath := filepath.Join(inputDir, name)
		fi, err := os.Stat(inputPath)
		if err != nil {
			slog.Warn("skipping", "file", name, "err", err)
			continue
		}

		_, err = convert.File(inputPath, filepath.Join(outputDir, header), arrayName, opts)
		if err != nil {
			slog.Warn("skipping", "file", name, "err", err)
			continue
		}
		totalSize += fi.Size()
		converted = append(converted, Record{
			Filename:  name,
			ArrayName: arrayName,
			Header:    header,
			Size:      fi.Size(),
		})
	}

	masterPath := filepath.Join(outputDir, MasterHeaderName)
	slog.Info("generating master header", "path", masterPath)

	entries := make([]carray.MasterEntry, len(converted))
	for i, r := range converted {
		entries[i] = carray.MasterEntry{
			Filename:  r.Filename,
			ArrayName: r.ArrayName,
			Header:    r.Header,
		}
	}

	var buf bytes.Buffer
	if err := carray.WriteMaster(&buf, entries, opts); err != nil {
		return err
	}
	if err := os.WriteFile(masterPath, buf.Bytes(), 0o644); err != nil {
		return err
	}

	slog.Info("conversion complete", "files", len(converted))
	slog.Info(fmt.Sprintf("total size: %.1f KB (%.2f MB)",
		float64(totalSize)/1024,
		float64(totalSize)/(1024*1024),
	))
	if totalSize > flashWarnSize {
		slog.Warn(fmt.Sprintf("files (%.1f MB) may not fit in 16 MB flash, consider reducing quality or using fewer files",
			float64(totalSize)/(1024*1024),
		))
	}
	return nil
}

// listWavFiles returns the names of all regular entries in dir whose
// name ends in .wav, case-insensitively, in lexicographic order.
func listWavFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".wav") {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
