package config

import (
	"fmt"
	"io"
	"regexp"

	"go.yaml.in/yaml/v3"

	"github.com/embedkit/wav2c/internal/carray"
)

// Options are the rendering options shared by all commands. Zero
// values are filled from Default, so a partial options file only
// overrides what it names.
type Options struct {
	// StorageClass is emitted after each generated declarator so the
	// toolchain places the constant in flash. Set to "" to generate
	// portable C without a placement attribute.
	StorageClass string `yaml:"storage_class"`

	// Include is the header included by typed int16_t output.
	Include string `yaml:"include"`

	// RawInclude is the header included by raw byte-dump output.
	RawInclude string `yaml:"raw_include"`

	// NamePrefix is prepended to array names and header filenames
	// generated by convert-all.
	NamePrefix string `yaml:"name_prefix"`
}

func Default() *Options {
	return &Options{
		StorageClass: "PROGMEM",
		Include:      "<stdint.h>",
		RawInclude:   "<Arduino.h>",
		NamePrefix:   "audio_",
	}
}

func Parse(r io.Reader) (*Options, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	opts := Default()
	err := decoder.Decode(opts)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

var cIdentReg = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (o *Options) Validate() error {
	if o.StorageClass != "" && !cIdentReg.MatchString(o.StorageClass) {
		return keyInvalidError("storage_class", o.StorageClass)
	}
	if o.NamePrefix != "" && !cIdentReg.MatchString(o.NamePrefix) {
		return keyInvalidError("name_prefix", o.NamePrefix)
	}
	return nil
}

// Render maps the options onto the serializer's knobs.
func (o *Options) Render() carray.Options {
	return carray.Options{
		StorageClass: o.StorageClass,
		Include:      o.Include,
		RawInclude:   o.RawInclude,
	}
}

func keyInvalidError(key, value string) error {
	return fmt.Errorf("key '%s' has value '%s', must be a C identifier", key, value)
}
