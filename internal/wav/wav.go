package wav

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Format holds the decoded fmt chunk fields of a RIFF/WAVE file plus
// the size of its data chunk. Field widths match the wire format.
type Format struct {
	AudioFormat   uint16 // 1 = PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// NumSamples returns the number of whole samples in the data chunk.
// Trailing bytes of a partial sample are dropped.
func (f Format) NumSamples() uint32 {
	bytesPerSample := uint32(f.BitsPerSample) / 8
	if bytesPerSample == 0 {
		return 0
	}
	return f.DataSize / bytesPerSample
}

// ReadFormat reads the RIFF header, the fmt chunk and every chunk up to
// and including the data chunk header. On success the reader is
// positioned at the first byte of sample data and DataSize holds the
// data chunk length.
func ReadFormat(r io.Reader) (Format, error) {
	var f Format

	magic, err := readChunkID(r)
	if err != nil {
		return f, err
	}
	if magic != "RIFF" {
		return f, ErrNotRIFF
	}

	// Overall RIFF size field. Read but not validated, encoders get it
	// wrong often enough that checking would reject playable files.
	if _, err := readUint32(r); err != nil {
		return f, err
	}

	magic, err = readChunkID(r)
	if err != nil {
		return f, err
	}
	if magic != "WAVE" {
		return f, ErrNotWAVE
	}

	magic, err = readChunkID(r)
	if err != nil {
		return f, err
	}
	if magic != "fmt " {
		return f, ErrNoFmtChunk
	}

	fmtSize, err := readUint32(r)
	if err != nil {
		return f, err
	}
	if fmtSize < 16 {
		return f, ErrTruncated
	}

	// Canonical 16-byte PCM fmt body.
	var body [16]byte
	if err := readFull(r, body[:]); err != nil {
		return f, err
	}
	f.AudioFormat = binary.LittleEndian.Uint16(body[0:2])
	f.NumChannels = binary.LittleEndian.Uint16(body[2:4])
	f.SampleRate = binary.LittleEndian.Uint32(body[4:8])
	f.ByteRate = binary.LittleEndian.Uint32(body[8:12])
	f.BlockAlign = binary.LittleEndian.Uint16(body[12:14])
	f.BitsPerSample = binary.LittleEndian.Uint16(body[14:16])

	// Extended format fields (non-PCM extensions), skipped uninterpreted.
	if fmtSize > 16 {
		if err := discard(r, int64(fmtSize-16)); err != nil {
			return f, err
		}
	}

	// Scan chunks until the data chunk.
	for {
		var id [4]byte
		if _, err := io.ReadFull(r, id[:]); err != nil {
			if err == io.EOF {
				return f, ErrNoDataChunk
			}
			if err == io.ErrUnexpectedEOF {
				return f, ErrTruncated
			}
			return f, err
		}

		chunkSize, err := readUint32(r)
		if err != nil {
			return f, err
		}

		if string(id[:]) == "data" {
			f.DataSize = chunkSize
			return f, nil
		}

		if err := discard(r, int64(chunkSize)); err != nil {
			if err == ErrTruncated {
				return f, ErrNoDataChunk
			}
			return f, err
		}
	}
}

// Decode parses the container and reads the entire data chunk into
// memory.
func Decode(r io.Reader) (Format, []byte, error) {
	f, err := ReadFormat(r)
	if err != nil {
		return f, nil, err
	}
	data := make([]byte, f.DataSize)
	if err := readFull(r, data); err != nil {
		return f, nil, err
	}
	return f, data, nil
}

// SniffFormat locates and decodes the fmt chunk anywhere in b without
// requiring a data chunk. Used when the whole file is embedded as-is
// and the header is only needed for metadata.
func SniffFormat(b []byte) (Format, error) {
	var f Format

	if len(b) < 12 {
		return f, ErrTruncated
	}
	if !bytes.Equal(b[0:4], []byte("RIFF")) {
		return f, ErrNotRIFF
	}
	if !bytes.Equal(b[8:12], []byte("WAVE")) {
		return f, ErrNotWAVE
	}

	idx := bytes.Index(b, []byte("fmt "))
	if idx < 0 {
		return f, ErrNoFmtChunk
	}
	if len(b) < idx+8 {
		return f, ErrTruncated
	}
	fmtSize := binary.LittleEndian.Uint32(b[idx+4 : idx+8])
	body := b[idx+8:]
	if fmtSize < 16 || len(body) < 16 {
		return f, ErrTruncated
	}

	f.AudioFormat = binary.LittleEndian.Uint16(body[0:2])
	f.NumChannels = binary.LittleEndian.Uint16(body[2:4])
	f.SampleRate = binary.LittleEndian.Uint32(body[4:8])
	f.ByteRate = binary.LittleEndian.Uint32(body[8:12])
	f.BlockAlign = binary.LittleEndian.Uint16(body[12:14])
	f.BitsPerSample = binary.LittleEndian.Uint16(body[14:16])

	return f, nil
}

func readChunkID(r io.Reader) (string, error) {
	var id [4]byte
	if err := readFull(r, id[:]); err != nil {
		return "", err
	}
	return string(id[:]), nil
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncated
		}
		return err
	}
	return nil
}

func discard(r io.Reader, n int64) error {
	written, err := io.CopyN(io.Discard, r, n)
	if err != nil {
		if err == io.EOF && written < n {
			return ErrTruncated
		}
		return err
	}
	return nil
}
