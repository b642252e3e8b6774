// Package config loads umaview settings from defaults, an optional YAML file and the
// environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given and it exists in the working directory.
const DefaultFile = "umaview.yaml"

// Well-known file names shared by the extractor, enrichment and control panel.
const (
	DataFile     = "data.json"
	EnrichedFile = "enriched_data.json"
	ViewerFile   = "viewer.html"
)

// Spark id strategy names accepted in spark_strategies
const (
	StrategyCompact = "compact"
	StrategyOffset  = "offset"
)

// SparkStrategyNames lists every known strategy in the default order
var SparkStrategyNames = []string{StrategyCompact, StrategyOffset}

// Sources lists the URLs of the lookup tables
type Sources struct {
	SkillNamesGlobal string `yaml:"skill_names_global" env:"SKILL_NAMES_GLOBAL"`
	SkillNamesJP     string `yaml:"skill_names_jp" env:"SKILL_NAMES_JP"`
	SkillData        string `yaml:"skill_data" env:"SKILL_DATA"`
	UmasGlobal       string `yaml:"umas_global" env:"UMAS_GLOBAL"`
	UmasFull         string `yaml:"umas_full" env:"UMAS_FULL"`
	TextData         string `yaml:"text_data" env:"TEXT_DATA"`
}

// Config holds all runtime settings
type Config struct {
	Dir             string        `yaml:"dir" env:"UMAVIEW_DIR"`
	Port            int           `yaml:"port" env:"UMAVIEW_PORT"`
	DBPath          string        `yaml:"db_path" env:"UMAVIEW_DB_PATH"`
	ExtractorPath   string        `yaml:"extractor_path" env:"UMAEXTRACTOR_PATH"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout" env:"UMAVIEW_FETCH_TIMEOUT"`
	SparkStrategies []string      `yaml:"spark_strategies" env:"UMAVIEW_SPARK_STRATEGIES" envSeparator:","`
	OpenBrowser     bool          `yaml:"open_browser" env:"UMAVIEW_OPEN_BROWSER"`
	Sources         Sources       `yaml:"sources" envPrefix:"UMAVIEW_SOURCE_"`
}

// DefaultSources returns the community data sources
func DefaultSources() Sources {
	return Sources{
		SkillNamesGlobal: "https://raw.githubusercontent.com/TheCing/uma-tools/master/umalator-global/skillnames.json",
		SkillNamesJP:     "https://raw.githubusercontent.com/TheCing/uma-tools/master/uma-skill-tools/data/skillnames.json",
		SkillData:        "https://raw.githubusercontent.com/TheCing/uma-tools/master/uma-skill-tools/data/skill_data.json",
		UmasGlobal:       "https://raw.githubusercontent.com/TheCing/uma-tools/master/umalator-global/umas.json",
		UmasFull:         "https://raw.githubusercontent.com/TheCing/uma-tools/master/umas.json",
		TextData:         "https://raw.githubusercontent.com/UmaTL/hachimi-tl-en/main/localized_data/text_data_dict.json",
	}
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Dir:             ".",
		Port:            8080,
		FetchTimeout:    30 * time.Second,
		SparkStrategies: slices.Clone(SparkStrategyNames),
		OpenBrowser:     true,
		Sources:         DefaultSources(),
	}
}

// Load builds a Config from defaults, the YAML file at path and the environment.
// An empty path falls back to DefaultFile; a missing default file is not an error,
// a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail later at a less helpful point
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	for _, s := range c.SparkStrategies {
		if !slices.Contains(SparkStrategyNames, s) {
			return fmt.Errorf("unknown spark strategy %q (want one of %s)", s, strings.Join(SparkStrategyNames, ", "))
		}
	}
	return nil
}

// Path joins name onto the working directory
func (c Config) Path(name string) string {
	return filepath.Join(c.Dir, name)
}

// RunDBPath returns the run history database location
func (c Config) RunDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return c.Path("umaview.db")
}
