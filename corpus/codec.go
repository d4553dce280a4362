package corpus

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// Format is a Document encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

// Decode reads a Document from r.
func Decode(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	var doc Document
	switch f {
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case JSON:
		var s structpb.Struct
		if err := protojson.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		// The generic value tree goes back through the yaml tags so both
		// encodings share one field mapping.
		generic, err := yaml.Marshal(s.AsMap())
		if err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		if err := yaml.Unmarshal(generic, &doc); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, f)
	}
	return &doc, nil
}

// Encode writes doc to w.
func Encode(w io.Writer, doc *Document, f Format) error {
	var data []byte
	switch f {
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		data = buf.Bytes()
	case JSON:
		s, err := toStruct(doc)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		data, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		data = append(data, '\n')
	default:
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}

	_, err := w.Write(data)
	return err
}

func toStruct(doc *Document) (*structpb.Struct, error) {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// Load reads a Document from path, choosing the format by extension.
func Load(path string) (*Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer func() { _ = file.Close() }()

	doc, err := Decode(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path, choosing the format by extension.
func Save(path string, doc *Document) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing corpus: %w", err)
	}
	return nil
}
