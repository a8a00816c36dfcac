// Package schema builds structview shapes from declarative YAML documents,
// so field lists can live next to the binary format they describe instead
// of in code.
//
// Document form:
//
//	length: 16        # optional; forces an explicit layout of that size
//	fields:
//	  - name: a
//	    codec: uint8
//	  - name: b
//	    codec: uint32le
//	    offset: 4     # optional; all fields or none
//	  - name: tag
//	    codec: char:8
//
// Codec names resolve through the structview registry, so codecs registered
// by the application are usable from documents too.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/structview"
)

type fieldDoc struct {
	Name   string `yaml:"name"`
	Codec  string `yaml:"codec"`
	Size   int    `yaml:"size"`
	Offset *int   `yaml:"offset"`
}

type doc struct {
	Length int        `yaml:"length"`
	Fields []fieldDoc `yaml:"fields"`
}

// Parse builds a shape from a YAML document. Offsets are cumulative unless
// the document fixes them; fixing some but not all fields is an error.
func Parse(data []byte) (*structview.Shape, error) {
	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if len(d.Fields) == 0 {
		return nil, fmt.Errorf("schema declares no fields")
	}

	fields := make([]structview.Field, len(d.Fields))
	explicit := 0
	for i, fd := range d.Fields {
		codec, err := structview.Resolve(fd.Codec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		fields[i] = structview.Field{Name: fd.Name, Codec: codec, Size: fd.Size}
		if fd.Offset != nil {
			fields[i].Offset = *fd.Offset
			explicit++
		}
	}

	switch {
	case explicit == 0 && d.Length == 0:
		return structview.NewShape(fields...)
	case explicit == len(fields):
		return structview.NewShapeExplicit(d.Length, fields...)
	case explicit == 0:
		// length given, offsets derived
		s, err := structview.NewShape(fields...)
		if err != nil {
			return nil, err
		}
		if s.Len() != d.Length {
			return nil, fmt.Errorf("schema length %d does not match field layout %d", d.Length, s.Len())
		}
		return s, nil
	default:
		return nil, fmt.Errorf("schema fixes offsets for %d of %d fields; fix all or none", explicit, len(fields))
	}
}

// Load reads and parses a schema file.
func Load(path string) (*structview.Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
