package livenumber

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// readConfigFile decodes a JSON or YAML file into out. JSON documents are
// valid YAML, so both go through the YAML decoder and share the `yaml` tags.
func readConfigFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("livenumber: read %s: %w", path, err)
	}
	if err := decodeConfig(path, data, out); err != nil {
		return fmt.Errorf("livenumber: decode %s: %w", path, err)
	}
	return nil
}

func decodeConfig(path string, data []byte, out any) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("yaml parse error: %w", err)
	}
	return nil
}
