package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/arthur-debert/semtparser/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every override variable.
const EnvPrefix = "SEMT_"

// serviceEnv maps the SemT client variables onto config keys.
var serviceEnv = map[string]string{
	"BASE_URL": "service.base_url",
	"API_URL":  "service.api_url",
	"USERNAME": "service.username",
	"PASSWORD": "service.password",
}

// LoadOptions selects the user config file.
type LoadOptions struct {
	// ConfigFile is an explicit config path; it must exist.
	ConfigFile string

	// Candidates are tried in order when ConfigFile is empty; every one that
	// exists is loaded, later ones overriding earlier ones. Nil means
	// paths.ConfigCandidates().
	Candidates []string

	// SkipEnv ignores the environment layers.
	SkipEnv bool
}

// Load builds the configuration from all layers and validates it.
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config files
	files, err := configFiles(opts)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		log.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3 and 4. Environment
	if !opts.SkipEnv {
		if err := loadEnv(k); err != nil {
			return nil, err
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("baseUrl", cfg.Service.BaseURL).
		Str("apiUrl", cfg.Service.APIURL).
		Str("username", cfg.Service.Username).
		Stringer("password", cfg.Service.Password).
		Str("window", cfg.Pipeline.Window).
		Str("emission", cfg.Pipeline.Emission).
		Str("format", cfg.Output.Format).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Default returns the embedded defaults alone.
func Default() (*Config, error) {
	return Load(LoadOptions{Candidates: []string{}, SkipEnv: true})
}

func loadEnv(k *koanf.Koanf) error {
	// SemT client variables
	service := map[string]interface{}{}
	for name, key := range serviceEnv {
		if value, ok := os.LookupEnv(name); ok {
			service[key] = value
		}
	}
	if err := k.Load(confmap.Provider(service, "."), nil); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load service env vars")
	}

	// SEMT_ overrides, matched against known keys so underscores inside
	// key names survive.
	known := envKeys(k.Keys())
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return known[strings.TrimPrefix(s, EnvPrefix)]
	}), nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}
	return nil
}

func configFiles(opts LoadOptions) ([]string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		return []string{opts.ConfigFile}, nil
	}

	candidates := opts.Candidates
	if candidates == nil {
		candidates = paths.ConfigCandidates()
	}

	var found []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			found = append(found, path)
		}
	}
	return found, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	}
	return toml.Parser()
}

// envKeys maps SERVICE_BASE_URL style names to their dotted keys.
func envKeys(keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}
	return out
}
