package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// parseJSON loads an optional config file. The file mirrors the environment
// variables as nested objects, so {"server": {"address": ":8080"}} sets the
// same field as SERVER_ADDRESS. Keys are case-insensitive, durations are
// strings such as "15m", and the file itself may not point at another file.
func parseJSON(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var tree map[string]any
	if err = dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	environ := make(map[string]string)
	if err = flattenJSON("", tree, environ); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := new(StructuredConfig)
	if err = parseEnvFrom(cfg, environ); err != nil {
		return nil, fmt.Errorf("error applying json configs: %w", err)
	}
	cfg.JSONFilePath = ""

	return cfg, nil
}

// flattenJSON turns nested objects into upper-cased, underscore-joined keys.
// Null values are skipped.
func flattenJSON(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}

		switch v := value.(type) {
		case nil:
		case map[string]any:
			if err := flattenJSON(name, v, out); err != nil {
				return err
			}
		case string:
			out[name] = v
		case json.Number:
			out[name] = v.String()
		case bool:
			if v {
				out[name] = "true"
			} else {
				out[name] = "false"
			}
		default:
			return fmt.Errorf("key %s: unsupported value %T", name, value)
		}
	}
	return nil
}
