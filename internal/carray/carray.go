package carray

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/embedkit/wav2c/internal/wav"
)

// Values and bytes emitted per array literal line. Downstream build
// tooling diffs generated headers, so the layout is fixed.
const elemsPerLine = 12

// Options control header rendering.
type Options struct {
	// StorageClass is emitted verbatim after each declarator so the
	// toolchain places the constant in non-volatile memory, e.g.
	// "PROGMEM". Empty omits the marker and yields portable C.
	StorageClass string

	// Include is the include directive operand of typed-sample
	// headers, e.g. "<stdint.h>".
	Include string

	// RawInclude is the include directive operand of raw-byte headers,
	// e.g. "<Arduino.h>".
	RawInclude string
}

func (o Options) marker() string {
	if o.StorageClass == "" {
		return ""
	}
	return " " + o.StorageClass
}

// GuardMacro returns the include-guard macro for a typed-sample header.
func GuardMacro(name string) string {
	return "_" + strings.ToUpper(name) + "_H"
}

// RawGuard is the include guard shared by every raw-byte header. Only
// one raw header can be included per translation unit; kept this way
// for compatibility with firmware that expects WAV_DATA_H.
const RawGuard = "WAV_DATA_H"

var identReplacer = strings.NewReplacer("-", "_", " ", "_", ".", "_")

// Identifier derives a C identifier from a file base name.
func Identifier(s string) string {
	return identReplacer.Replace(norm.NFC.String(s))
}

// BaseIdentifier derives a C identifier from the base name of path
// with its extension removed.
func BaseIdentifier(path string) string {
	base := filepath.Base(path)
	return Identifier(strings.TrimSuffix(base, filepath.Ext(base)))
}

// WriteSamples renders data as a little-endian signed 16-bit sample
// array named <name>_data plus metadata scalars, wrapped in an
// include guard derived from name.
func WriteSamples(w io.Writer, name, source string, f wav.Format, data []byte, opts Options) error {
	numSamples := len(data) / 2

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// Auto-generated from %s\n", source)
	fmt.Fprintf(bw, "// Sample rate: %d Hz\n", f.SampleRate)
	fmt.Fprintf(bw, "// Channels: %d\n", f.NumChannels)
	fmt.Fprintf(bw, "// Samples: %d\n", numSamples)
	fmt.Fprintf(bw, "// Size: %d bytes (%.1f KB)\n\n", len(data), float64(len(data))/1024)

	guard := GuardMacro(name)
	fmt.Fprintf(bw, "#ifndef %s\n", guard)
	fmt.Fprintf(bw, "#define %s\n\n", guard)

	fmt.Fprintf(bw, "#include %s\n\n", opts.Include)

	fmt.Fprintf(bw, "const int16_t %s_data[]%s = {\n", name, opts.marker())
	for i := 0; i < numSamples; i += elemsPerLine {
		end := min(i+elemsPerLine, numSamples)
		bw.WriteString("  ")
		for j := i; j < end; j++ {
			if j > i {
				bw.WriteString(", ")
			}
			s := int16(binary.LittleEndian.Uint16(data[2*j : 2*j+2]))
			fmt.Fprintf(bw, "%6d", s)
		}
		if i+elemsPerLine < numSamples {
			bw.WriteString(",\n")
		} else {
			bw.WriteString("\n")
		}
	}
	bw.WriteString("};\n\n")

	fmt.Fprintf(bw, "const uint32_t %s_sample_rate%s = %d;\n", name, opts.marker(), f.SampleRate)
	fmt.Fprintf(bw, "const uint16_t %s_num_channels%s = %d;\n", name, opts.marker(), f.NumChannels)
	fmt.Fprintf(bw, "const uint32_t %s_num_samples%s = %d;\n", name, opts.marker(), numSamples)
	fmt.Fprintf(bw, "const uint32_t %s_size_bytes%s = %d;\n\n", name, opts.marker(), len(data))

	fmt.Fprintf(bw, "#endif // %s\n", guard)

	return bw.Flush()
}

// WriteBytes renders fileData, usually an entire WAV file including
// its header, as a uint8_t hex array named <name>_data plus metadata
// scalars. Every array line ends with a comma, including the last,
// matching the layout downstream tooling already consumes.
func WriteBytes(w io.Writer, name, source string, f wav.Format, fileData []byte, opts Options) error {
	size := len(fileData)

	bw := bufio.NewWriter(w)

	bw.WriteString("// Auto-generated WAV file array\n")
	fmt.Fprintf(bw, "// Source: %s\n", source)
	fmt.Fprintf(bw, "// Size: %.2f MB (%d bytes)\n", float64(size)/(1024*1024), size)
	fmt.Fprintf(bw, "// Format: %dHz, %d-bit, %dch\n\n", f.SampleRate, f.BitsPerSample, f.NumChannels)

	fmt.Fprintf(bw, "#ifndef %s\n", RawGuard)
	fmt.Fprintf(bw, "#define %s\n\n", RawGuard)

	fmt.Fprintf(bw, "#include %s\n\n", opts.RawInclude)

	bw.WriteString("// WAV data array - stored in FLASH memory\n")
	fmt.Fprintf(bw, "const uint8_t %s_data[]%s = {\n", name, opts.marker())
	for i := 0; i < size; i += elemsPerLine {
		end := min(i+elemsPerLine, size)
		bw.WriteString("  ")
		for j := i; j < end; j++ {
			if j > i {
				bw.WriteString(", ")
			}
			fmt.Fprintf(bw, "0x%02X", fileData[j])
		}
		bw.WriteString(",\n")
	}
	bw.WriteString("};\n\n")

	fmt.Fprintf(bw, "const uint32_t %s_size%s = %d;\n\n", name, opts.marker(), size)
	bw.WriteString("// Metadata\n")
	fmt.Fprintf(bw, "const uint32_t %s_sample_rate%s = %d;\n", name, opts.marker(), f.SampleRate)
	fmt.Fprintf(bw, "const uint16_t %s_bits_per_sample%s = %d;\n", name, opts.marker(), f.BitsPerSample)
	fmt.Fprintf(bw, "const uint16_t %s_num_channels%s = %d;\n\n", name, opts.marker(), f.NumChannels)

	fmt.Fprintf(bw, "#endif // %s\n", RawGuard)

	return bw.Flush()
}
