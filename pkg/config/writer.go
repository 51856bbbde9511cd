package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/google/renameio/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// Set validates key and value and persists them into the TOML file at path,
// preserving any other values the file already holds.
func Set(path, name, value string) error {
	key, err := LookupKey(name)
	if err != nil {
		return err
	}
	if err := key.Validate(value); err != nil {
		return err
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	setInMap(doc, strings.Split(key.Path, "."), value)

	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to encode configuration")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", path)
	}

	logger := logging.GetLogger("config")
	logger.Info().
		Str("path", path).
		Str("key", key.Path).
		Str("value", value).
		Msg("Configuration updated")
	return nil
}

func readDocument(path string) (map[string]interface{}, error) {
	doc := make(map[string]interface{})

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}
	return doc, nil
}

func setInMap(m map[string]interface{}, keys []string, val interface{}) {
	curr := m
	for i, key := range keys {
		if i == len(keys)-1 {
			curr[key] = val
			return
		}
		next, ok := curr[key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			curr[key] = next
		}
		curr = next
	}
}
