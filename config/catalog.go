package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"coinbot/domain/entities"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout of CATALOG_FILE
type catalogFile struct {
	Items []*entities.CatalogItem `yaml:"items"`
}

// LoadCatalog reads global catalog items from a YAML file.
// An empty path yields no items.
func LoadCatalog(path string) ([]*entities.CatalogItem, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes catalog YAML, rejecting unknown fields and duplicate keys
func ParseCatalog(data []byte) ([]*entities.CatalogItem, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Items))
	for i, item := range file.Items {
		if item == nil || item.Key == "" {
			return nil, fmt.Errorf("catalog item %d has no key", i)
		}
		key := entities.NormalizeItemKey(item.Key)
		if seen[key] {
			return nil, fmt.Errorf("duplicate catalog item %q", key)
		}
		seen[key] = true
	}
	return file.Items, nil
}
