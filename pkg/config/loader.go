package config

import (
	"os"
	"strings"

	"github.com/devopsctl/devops-cli/pkg/errors"
	"github.com/devopsctl/devops-cli/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides
const EnvPrefix = "DEVOPS_CLI_"

// LoadOptions names the files Load reads. Missing files are skipped.
type LoadOptions struct {
	UserFile      string
	WorkspaceFile string
	// Environ defaults to os.Environ() when nil
	Environ []string
}

// Load builds the effective configuration from every layer
func Load(opts LoadOptions) (*Loaded, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")
	loaded := &Loaded{Sources: make(map[string]string)}

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	layers := []struct {
		path   string
		source string
	}{
		{opts.UserFile, SourceUser},
		{opts.WorkspaceFile, SourceWorkspace},
	}
	for _, layer := range layers {
		if layer.path == "" {
			continue
		}
		if _, err := os.Stat(layer.path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", layer.path)
		}

		layerK := koanf.New(".")
		if err := layerK.Load(file.Provider(layer.path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", layer.path).
				WithDetail("path", layer.path)
		}
		if err := k.Merge(layerK); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to merge %s", layer.path)
		}
		for _, key := range layerK.Keys() {
			loaded.Sources[key] = layer.source
		}
		loaded.Files = append(loaded.Files, layer.path)
		logger.Debug().Str("path", layer.path).Str("layer", layer.source).Msg("Loaded config file")
	}

	envK := koanf.New(".")
	if err := envK.Load(envProvider(opts.Environ), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	for _, key := range envK.Keys() {
		// Only keys that map onto a setting count; DEVOPS_CLI_CONFIG_DIR and
		// friends are path overrides handled by pkg/paths.
		if _, err := LookupKey(key); err != nil {
			continue
		}
		if err := k.Set(key, envK.Get(key)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to apply %s", key)
		}
		loaded.Sources[key] = SourceEnv
	}

	if err := unmarshal(k, &loaded.Config); err != nil {
		return nil, err
	}
	return loaded, nil
}

func unmarshal(k *koanf.Koanf, cfg *Config) error {
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return nil
}

// envKey maps DEVOPS_CLI_GIT_BRANCH to git.branch
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

func envProvider(environ []string) koanf.Provider {
	if environ == nil {
		return env.Provider(EnvPrefix, ".", envKey)
	}
	return &environProvider{environ: environ}
}

// environProvider reads a fixed environment list, so tests do not depend on the process env
type environProvider struct {
	environ []string
}

func (p *environProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New(errors.ErrNotImplemented, "environProvider does not support ReadBytes")
}

func (p *environProvider) Read() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for _, kv := range p.environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		out[envKey(name)] = value
	}
	return maps.Unflatten(out, "."), nil
}
