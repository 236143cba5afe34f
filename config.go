package stuart

import "gopkg.in/yaml.v3"

// Config is the project configuration, loaded from stuart.yml.
type Config struct {
	// Name of the project.
	Name string `yaml:"name"`
	// Author of the project, if any.
	Author string `yaml:"author"`
	// StripExtensions rewrites X.html into X/index.html on save.
	StripExtensions bool `yaml:"strip_extensions"`
	// SaveDataFiles keeps .json files in the output.
	SaveDataFiles bool `yaml:"save_data_files"`
	// SaveMetadata exports metadata.json beside the output.
	SaveMetadata bool `yaml:"save_metadata"`
	// Plugins maps plugin names to the paths of their scripts.
	Plugins map[string]string `yaml:"plugins"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{StripExtensions: true}
}

// LoadConfig parses a stuart.yml manifest, applying defaults for absent
// options.
func LoadConfig(b []byte) (Config, error) {
	var config = DefaultConfig()
	if err := yaml.Unmarshal(b, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}
