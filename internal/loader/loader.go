// Package loader reads newline-delimited JSON order records from a
// directory of .json files.
package loader

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// LoadObjectsFromDir loads JSON objects from all .json files directly
// inside dir (non-recursive). Each non-blank line of a file is parsed as
// one independent JSON object. Lines that fail to parse are logged and
// skipped; a corrupt line never aborts the load. Filesystem errors
// (unreadable directory or file) are returned.
func LoadObjectsFromDir(dir string) ([]map[string]interface{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			Message: "failed to read directory " + dir,
			Cause:   err,
		}
	}

	var objects []map[string]interface{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		loaded, err := loadObjectsFromFile(path)
		if err != nil {
			return nil, err
		}
		objects = append(objects, loaded...)
	}

	return objects, nil
}

// loadObjectsFromFile reads one NDJSON file. Lines preserve file order.
func loadObjectsFromFile(path string) ([]map[string]interface{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: "failed to read file " + path,
			Cause:   err,
		}
	}

	var objects []map[string]interface{}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			log.Printf("error parsing JSON in file %s: %v", path, err)
			continue
		}
		objects = append(objects, obj)
	}

	return objects, nil
}
