package convert

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/embedkit/wav2c/internal/carray"
	"github.com/embedkit/wav2c/internal/wav"
)

// PCM is the audioFormat tag for uncompressed linear PCM.
const PCM = 1

// File converts one 16-bit PCM WAV file into a typed int16_t array
// header. The header is rendered fully in memory, so no output file
// exists unless the conversion succeeds.
func File(inputPath, outputPath, arrayName string, opts carray.Options) (wav.Format, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return wav.Format{}, err
	}
	defer func() {
		_ = in.Close()
	}()

	slog.Info("converting", "input", inputPath, "output", outputPath)
	slog.Info("array name", "name", arrayName)

	f, data, err := wav.Decode(bufio.NewReader(in))
	if err != nil {
		return f, fmt.Errorf("%s: %w", inputPath, err)
	}

	slog.Info("format",
		"rate", f.SampleRate,
		"channels", f.NumChannels,
		"bits", f.BitsPerSample,
		"bytes", f.DataSize,
		"samples", f.NumSamples(),
	)

	if f.BitsPerSample != 16 {
		return f, fmt.Errorf("%s: %w", inputPath, &wav.UnsupportedFormatError{
			Reason: fmt.Sprintf("%d-bit samples, only 16-bit WAV files are supported", f.BitsPerSample),
		})
	}

	var buf bytes.Buffer
	if err := carray.WriteSamples(&buf, arrayName, filepath.Base(inputPath), f, data, opts); err != nil {
		return f, err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return f, err
	}
	return f, nil
}

// RawFile embeds the entire WAV file, header included, as a uint8_t
// hex array header. Any bit depth is accepted; non-PCM input only
// draws a warning because the bytes are copied untouched.
func RawFile(inputPath, outputPath, varName string, opts carray.Options) (wav.Format, error) {
	fileData, err := os.ReadFile(inputPath)
	if err != nil {
		return wav.Format{}, err
	}

	f, err := wav.SniffFormat(fileData)
	if err != nil {
		return f, fmt.Errorf("%s: %w", inputPath, err)
	}

	slog.Info("format",
		"rate", f.SampleRate,
		"bits", f.BitsPerSample,
		"channels", f.NumChannels,
	)

	if f.AudioFormat != PCM {
		slog.Warn("not PCM format, playback may not work correctly", "format", f.AudioFormat)
	}

	var buf bytes.Buffer
	if err := carray.WriteBytes(&buf, varName, filepath.Base(inputPath), f, fileData, opts); err != nil {
		return f, err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return f, err
	}
	return f, nil
}
