package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/resippy/internal/paths"
	"github.com/mesh-intelligence/resippy/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
	cfgKeyRaters  = "raters"
)

// configFile is the shape of config.yaml.
type configFile struct {
	Backend string   `yaml:"backend"`
	DataDir string   `yaml:"data_dir,omitempty"`
	Raters  []string `yaml:"raters"`
}

func defaultConfigFile() configFile {
	return configFile{Backend: types.BackendSQLite, Raters: types.DefaultRaters}
}

// loadConfig reads config.yaml from configDir with Viper, creating the
// directory and a default file on first run. A missing file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := writeConfigIfMissing(paths.ConfigFile(configDir)); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyRaters, types.DefaultRaters)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return v, nil
}

func writeConfigIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return writeConfig(path, defaultConfigFile())
}

func readConfig(path string) (configFile, error) {
	cfg := defaultConfigFile()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func writeConfig(path string, cfg configFile) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# resippy configuration\n# raters: one rating column per name, added to the menu on next use\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
