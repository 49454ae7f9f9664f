package carray

import (
	"bufio"
	"fmt"
	"io"
)

// MasterGuard is the include guard of the aggregate header.
const MasterGuard = "_AUDIO_DATA_H"

// MasterEntry is one converted file referenced by the master header.
// Entries are emitted in slice order and all four parallel arrays are
// indexed consistently by it.
type MasterEntry struct {
	Filename  string // original wav filename, emitted as a string literal
	ArrayName string // identifier prefix of the generated arrays
	Header    string // generated per-file header filename
}

// WriteMaster renders the aggregate header: one include per converted
// file, a count macro and parallel arrays of data pointers, sample
// counts, channel counts and original filenames.
func WriteMaster(w io.Writer, entries []MasterEntry, opts Options) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("// Auto-generated master header for all audio files\n\n")
	fmt.Fprintf(bw, "#ifndef %s\n", MasterGuard)
	fmt.Fprintf(bw, "#define %s\n\n", MasterGuard)

	for _, e := range entries {
		fmt.Fprintf(bw, "#include \"%s\"\n", e.Header)
	}

	bw.WriteString("\n// Audio file count\n")
	fmt.Fprintf(bw, "#define NUM_AUDIO_FILES %d\n\n", len(entries))

	bw.WriteString("// Array of pointers to audio data\n")
	fmt.Fprintf(bw, "const int16_t* const audio_files[NUM_AUDIO_FILES]%s = {\n", opts.marker())
	writeEntries(bw, entries, func(e MasterEntry) string { return e.ArrayName + "_data" })

	bw.WriteString("// Array of sample counts\n")
	fmt.Fprintf(bw, "const uint32_t audio_num_samples[NUM_AUDIO_FILES]%s = {\n", opts.marker())
	writeEntries(bw, entries, func(e MasterEntry) string { return e.ArrayName + "_num_samples" })

	bw.WriteString("// Array of channel counts\n")
	fmt.Fprintf(bw, "const uint16_t audio_num_channels[NUM_AUDIO_FILES]%s = {\n", opts.marker())
	writeEntries(bw, entries, func(e MasterEntry) string { return e.ArrayName + "_num_channels" })

	bw.WriteString("// Array of original filenames\n")
	fmt.Fprintf(bw, "const char* const audio_filenames[NUM_AUDIO_FILES]%s = {\n", opts.marker())
	writeEntries(bw, entries, func(e MasterEntry) string { return `"` + e.Filename + `"` })

	fmt.Fprintf(bw, "#endif // %s\n", MasterGuard)

	return bw.Flush()
}

func writeEntries(bw *bufio.Writer, entries []MasterEntry, value func(MasterEntry) string) {
	for i, e := range entries {
		bw.WriteString("  " + value(e))
		if i < len(entries)-1 {
			bw.WriteString(",\n")
		} else {
			bw.WriteString("\n")
		}
	}
	bw.WriteString("};\n\n")
}
