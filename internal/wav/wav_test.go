package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

type chunk struct {
	id   string
	data []byte
}

func riff(chunks ...chunk) []byte {
	var body bytes.Buffer
	body.WriteString("WAVE")
	for _, c := range chunks {
		body.WriteString(c.id)
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(c.data)))
		body.Write(c.data)
	}
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	return buf.Bytes()
}

func fmtChunk(audioFormat, channels uint16, rate uint32, bits uint16, extra ...byte) chunk {
	var b bytes.Buffer
	_ = binary.Write(&b, binary.LittleEndian, audioFormat)
	_ = binary.Write(&b, binary.LittleEndian, channels)
	_ = binary.Write(&b, binary.LittleEndian, rate)
	_ = binary.Write(&b, binary.LittleEndian, rate*uint32(channels)*uint32(bits/8))
	_ = binary.Write(&b, binary.LittleEndian, channels*(bits/8))
	_ = binary.Write(&b, binary.LittleEndian, bits)
	b.Write(extra)
	return chunk{id: "fmt ", data: b.Bytes()}
}

func TestReadFormat(t *testing.T) {
	pcmData := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x01}

	tests := []struct {
		name    string
		input   []byte
		want    Format
		wantErr error
	}{
		{
			name:  "canonical PCM",
			input: riff(fmtChunk(1, 1, 8000, 16), chunk{id: "data", data: pcmData}),
			want: Format{
				AudioFormat:   1,
				NumChannels:   1,
				SampleRate:    8000,
				ByteRate:      16000,
				BlockAlign:    2,
				BitsPerSample: 16,
				DataSize:      6,
			},
		},
		{
			name:  "extended fmt chunk",
			input: riff(fmtChunk(1, 2, 44100, 16, 0x00, 0x00), chunk{id: "data", data: pcmData}),
			want: Format{
				AudioFormat:   1,
				NumChannels:   2,
				SampleRate:    44100,
				ByteRate:      176400,
				BlockAlign:    4,
				BitsPerSample: 16,
				DataSize:      6,
			},
		},
		{
			name: "chunks before data are skipped",
			input: riff(
				fmtChunk(1, 1, 8000, 16),
				chunk{id: "LIST", data: []byte("INFOabcd")},
				chunk{id: "data", data: pcmData},
			),
			want: Format{
				AudioFormat:   1,
				NumChannels:   1,
				SampleRate:    8000,
				ByteRate:      16000,
				BlockAlign:    2,
				BitsPerSample: 16,
				DataSize:      6,
			},
		},
		{
			name:    "empty input",
			input:   nil,
			wantErr: ErrTruncated,
		},
		{
			name:    "wrong RIFF magic",
			input:   []byte("RIFX\x00\x00\x00\x00WAVE"),
			wantErr: ErrNotRIFF,
		},
		{
			name:    "wrong WAVE magic",
			input:   []byte("RIFF\x04\x00\x00\x00WAVX"),
			wantErr: ErrNotWAVE,
		},
		{
			name:    "missing fmt chunk",
			input:   []byte("RIFF\x10\x00\x00\x00WAVEjunk\x00\x00\x00\x00"),
			wantErr: ErrNoFmtChunk,
		},
		{
			name:    "no data chunk",
			input:   riff(fmtChunk(1, 1, 8000, 16), chunk{id: "LIST", data: []byte("INFO")}),
			wantErr: ErrNoDataChunk,
		},
		{
			name:    "truncated fmt body",
			input:   []byte("RIFF\x20\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00"),
			wantErr: ErrTruncated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFormat(bytes.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadFormat() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFormat() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ReadFormat() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	pcmData := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x01}
	input := riff(fmtChunk(1, 1, 8000, 16), chunk{id: "data", data: pcmData})

	f, data, err := Decode(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(data, pcmData) {
		t.Fatalf("Decode() data = %v, want %v", data, pcmData)
	}
	if f.NumSamples() != 3 {
		t.Fatalf("NumSamples() = %d, want 3", f.NumSamples())
	}
}

func TestDecodeTruncatedData(t *testing.T) {
	input := riff(fmtChunk(1, 1, 8000, 16), chunk{id: "data", data: []byte{0x01, 0x00}})
	// Declared data size larger than the bytes that follow.
	input = input[:len(input)-1]

	_, _, err := Decode(bytes.NewReader(input))
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("Decode() error = %v, want %v", err, ErrTruncated)
	}
}

func TestFormatNumSamples(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		want uint32
	}{
		{"16-bit even", Format{BitsPerSample: 16, DataSize: 100}, 50},
		{"16-bit partial trailing sample dropped", Format{BitsPerSample: 16, DataSize: 101}, 50},
		{"8-bit", Format{BitsPerSample: 8, DataSize: 100}, 100},
		{"zero bit depth", Format{BitsPerSample: 0, DataSize: 100}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.NumSamples(); got != tt.want {
				t.Fatalf("NumSamples() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    Format
		wantErr error
	}{
		{
			name:  "fmt without data chunk",
			input: riff(fmtChunk(1, 2, 22050, 8)),
			want: Format{
				AudioFormat:   1,
				NumChannels:   2,
				SampleRate:    22050,
				ByteRate:      22050 * 2,
				BlockAlign:    2,
				BitsPerSample: 8,
			},
		},
		{
			name:    "not RIFF",
			input:   append([]byte("JUNK\x00\x00\x00\x00WAVE"), fmtChunk(1, 1, 8000, 16).data...),
			wantErr: ErrNotRIFF,
		},
		{
			name:    "missing fmt chunk",
			input:   []byte("RIFF\x08\x00\x00\x00WAVEdata"),
			wantErr: ErrNoFmtChunk,
		},
		{
			name:    "too short",
			input:   []byte("RIFF"),
			wantErr: ErrTruncated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SniffFormat(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SniffFormat() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SniffFormat() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("SniffFormat() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadFormatEncoderOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := []int{0, 1000, -1000, 32767, -32768, 0, 500, -500}
	writeEncodedWav(t, path, samples, 44100, 16, 1)

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	f, data, err := Decode(file)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if f.AudioFormat != 1 {
		t.Fatalf("AudioFormat = %d, want 1", f.AudioFormat)
	}
	if f.SampleRate != 44100 {
		t.Fatalf("SampleRate = %d, want 44100", f.SampleRate)
	}
	if f.BitsPerSample != 16 {
		t.Fatalf("BitsPerSample = %d, want 16", f.BitsPerSample)
	}
	if int(f.NumSamples()) != len(samples) {
		t.Fatalf("NumSamples() = %d, want %d", f.NumSamples(), len(samples))
	}
	for i, want := range samples {
		got := int(int16(binary.LittleEndian.Uint16(data[2*i : 2*i+2])))
		if got != want {
			t.Fatalf("sample %d = %d, want %d", i, got, want)
		}
	}
}

func writeEncodedWav(t *testing.T, path string, samples []int, rate, bits, channels int) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer func() {
		_ = file.Close()
	}()

	enc := gowav.NewEncoder(file, rate, bits, channels, 1)
	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bits,
	})
	if err != nil {
		t.Fatalf("Encoder.Write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Encoder.Close: %v", err)
	}
}
