package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// listKeys are stored as YAML sequences.
var listKeys = []string{KeyTypes, KeyMainBranches, KeySkipSources}

// SaveGlobal writes key to the global config file, creating it if needed.
func SaveGlobal(key, value string) error {
	path := GlobalPath()
	if path == "" {
		return fmt.Errorf("home directory not found")
	}
	return saveKey(path, key, value, 0o600)
}

// SaveLocal writes key to the config file in the repository root.
func SaveLocal(gitRoot, key, value string) error {
	if gitRoot == "" {
		return fmt.Errorf("git root not found")
	}
	// Local config is committed alongside the code and must be readable.
	return saveKey(filepath.Join(gitRoot, LocalConfigName), key, value, 0o644)
}

// DeleteGlobalKey removes a key from the global config.
func DeleteGlobalKey(key string) error {
	path := GlobalPath()
	if path == "" {
		return nil
	}
	return deleteKey(path, key, 0o600)
}

// DeleteLocalKey removes a key from the config file in the repository root.
func DeleteLocalKey(gitRoot, key string) error {
	if gitRoot == "" {
		return fmt.Errorf("git root not found")
	}
	return deleteKey(filepath.Join(gitRoot, LocalConfigName), key, 0o644)
}

// deleteKey reports no error when the file or key is absent.
func deleteKey(path, key string, perm os.FileMode) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(Keys, ", "))
	}

	existing, err := readFile(path)
	if err != nil {
		return err
	}
	if _, ok := existing[key]; !ok {
		return nil
	}
	delete(existing, key)
	return writeFile(path, existing, perm)
}

func saveKey(path, key, value string, perm os.FileMode) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(Keys, ", "))
	}

	existing, err := readFile(path)
	if err != nil {
		return err
	}
	if existing == nil {
		existing = make(map[string]interface{})
	}
	existing[key] = parseValue(key, value)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return writeFile(path, existing, perm)
}

func readFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var existing map[string]interface{}
	if err := yaml.Unmarshal(data, &existing); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return existing, nil
}

func writeFile(path string, values map[string]interface{}, perm os.FileMode) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseValue converts string values to appropriate types for YAML.
func parseValue(key, value string) interface{} {
	if slices.Contains(listKeys, key) {
		return splitList(value)
	}
	lower := strings.ToLower(value)
	if lower == "true" {
		return true
	}
	if lower == "false" {
		return false
	}
	return value
}
