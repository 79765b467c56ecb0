// Package report persists benchmark reports and compares them against a baseline
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-sif/preduce"
	"github.com/go-sif/preduce/harness"
	jsoniter "github.com/json-iterator/go"
	"github.com/pierrec/lz4"
)

// FormatVersion is written into every saved File, and checked on Load
const FormatVersion = 1

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// A File is the persisted form of a set of benchmark Reports over the same input
type File[N preduce.Number] struct {
	Version int                  `json:"version"`
	Created time.Time            `json:"created"`
	Label   string               `json:"label,omitempty"` // free-form description, such as the host name
	Reports []*harness.Report[N] `json:"reports"`
}

// NewFile wraps reports in a File stamped with the current time
func NewFile[N preduce.Number](label string, reports ...*harness.Report[N]) *File[N] {
	return &File[N]{
		Version: FormatVersion,
		Created: time.Now(),
		Label:   label,
		Reports: reports,
	}
}

// Save serializes f as lz4-compressed JSON
func Save[N preduce.Number](w io.Writer, f *File[N]) error {
	compressor := lz4.NewWriter(w)
	if err := json.NewEncoder(compressor).Encode(f); err != nil {
		compressor.Close()
		return fmt.Errorf("Unable to encode report file: %w", err)
	}
	return compressor.Close()
}

// Load is the inverse of Save
func Load[N preduce.Number](r io.Reader) (*File[N], error) {
	decompressor := lz4.NewReader(r)
	f := &File[N]{}
	if err := json.NewDecoder(decompressor).Decode(f); err != nil {
		return nil, fmt.Errorf("Unable to decode report file: %w", err)
	}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("Report file version %d is not supported (expected %d)", f.Version, FormatVersion)
	}
	return f, nil
}

// SaveFile saves f to a file at path, replacing it if it exists
func SaveFile[N preduce.Number](path string, f *File[N]) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(out, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// LoadFile loads a File saved at path
func LoadFile[N preduce.Number](path string) (*File[N], error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return Load[N](in)
}
