package carray

import (
	"bytes"
	"testing"
)

func TestWriteMaster(t *testing.T) {
	entries := []MasterEntry{
		{Filename: "kick.wav", ArrayName: "audio_kick", Header: "audio_kick.h"},
		{Filename: "snare-1.wav", ArrayName: "audio_snare_1", Header: "audio_snare-1.h"},
	}

	want := `// Auto-generated master header for all audio files

#ifndef _AUDIO_DATA_H
#define _AUDIO_DATA_H

#include "audio_kick.h"
#include "audio_snare-1.h"

// Audio file count
#define NUM_AUDIO_FILES 2

// Array of pointers to audio data
const int16_t* const audio_files[NUM_AUDIO_FILES] PROGMEM = {
  audio_kick_data,
  audio_snare_1_data
};

// Array of sample counts
const uint32_t audio_num_samples[NUM_AUDIO_FILES] PROGMEM = {
  audio_kick_num_samples,
  audio_snare_1_num_samples
};

// Array of channel counts
const uint16_t audio_num_channels[NUM_AUDIO_FILES] PROGMEM = {
  audio_kick_num_channels,
  audio_snare_1_num_channels
};

// Array of original filenames
const char* const audio_filenames[NUM_AUDIO_FILES] PROGMEM = {
  "kick.wav",
  "snare-1.wav"
};

#endif // _AUDIO_DATA_H
`

	var buf bytes.Buffer
	err := WriteMaster(&buf, entries, defaultOptions())
	if err != nil {
		t.Fatalf("WriteMaster() error = %v", err)
	}
	if buf.String() != want {
		t.Fatalf("WriteMaster() = %q, want %q", buf.String(), want)
	}
}

func TestWriteMasterEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMaster(&buf, nil, defaultOptions())
	if err != nil {
		t.Fatalf("WriteMaster() error = %v", err)
	}
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("#define NUM_AUDIO_FILES 0")) {
		t.Fatalf("missing zero count macro in:\n%s", out)
	}
}
