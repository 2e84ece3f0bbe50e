// Package config loads pngmin settings from YAML or JSON files.
//
// Example:
//
//	matrices:
//	  - filter: [0, 5]
//	    interlace: [0]
//	    windowBits: [15]
//	    level: [9]
//	    memLevel: [8, 9]
//	    strategy: [0, 1, 2, 3]
//	maxRecordPayloadSize: 1048576
//	workers: 4
//	candidateCompression: lz4
//	verifyChecksums: true
//
// Every matrix field is required; a missing field is an empty list and is rejected
// when the grid is expanded.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/pngmin"
	"github.com/arloliu/pngmin/errs"
	"github.com/arloliu/pngmin/format"
	"github.com/arloliu/pngmin/param"
)

// File is the content of a configuration file.
type File struct {
	Matrices             []param.Matrix `yaml:"matrices" json:"matrices"`
	MaxRecordPayloadSize int            `yaml:"maxRecordPayloadSize" json:"maxRecordPayloadSize"`
	Workers              *int           `yaml:"workers" json:"workers"`
	CandidateCompression string         `yaml:"candidateCompression" json:"candidateCompression"`
	VerifyChecksums      bool           `yaml:"verifyChecksums" json:"verifyChecksums"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return f, nil
}

// Parse decodes a YAML or JSON document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if _, ok := format.ParseCompressionType(f.CandidateCompression); !ok {
		return nil, errs.NewConfigError("candidateCompression", f.CandidateCompression, errs.ErrUnknownCodec)
	}

	return &f, nil
}

// Options converts the file into Optimizer options. Unset values are omitted so
// that they keep their defaults.
func (f *File) Options() []pngmin.Option {
	var opts []pngmin.Option

	if f.Matrices != nil {
		opts = append(opts, pngmin.WithMatrices(f.Matrices...))
	}
	if f.MaxRecordPayloadSize != 0 {
		opts = append(opts, pngmin.WithMaxRecordPayloadSize(f.MaxRecordPayloadSize))
	}
	if f.Workers != nil {
		opts = append(opts, pngmin.WithWorkers(*f.Workers))
	}
	if ct, ok := format.ParseCompressionType(f.CandidateCompression); ok && f.CandidateCompression != "" {
		opts = append(opts, pngmin.WithCandidateCompression(ct))
	}
	if f.VerifyChecksums {
		opts = append(opts, pngmin.WithChecksumVerification(true))
	}

	return opts
}
