package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/weaver/pkg/export"
	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// DefaultFile is the config file name looked up in the working directory.
const DefaultFile = "weaver.yaml"

// EnvPrefix prefixes environment overrides, e.g. WEAVER_OUTPUT_PATH.
const EnvPrefix = "WEAVER"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents weaver.yaml
type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Graph  GraphConfig  `yaml:"graph" mapstructure:"graph"`
	Theme  ThemeConfig  `yaml:"theme" mapstructure:"theme"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// OutputConfig defines where and how graphs are written
type OutputConfig struct {
	Path    string   `yaml:"path" mapstructure:"path"`
	Formats []string `yaml:"formats" mapstructure:"formats"`
	Force   bool     `yaml:"force" mapstructure:"force"`
	Title   string   `yaml:"title" mapstructure:"title"`
}

// GraphConfig tunes graph construction
type GraphConfig struct {
	DedupeRelations     bool `yaml:"dedupe_relations" mapstructure:"dedupe_relations"`
	ApplyToFilePath     bool `yaml:"apply_to_file_path" mapstructure:"apply_to_file_path"`
	DarkMode            bool `yaml:"dark_mode" mapstructure:"dark_mode"`
	LargeGraphThreshold int  `yaml:"large_graph_threshold" mapstructure:"large_graph_threshold"`
}

// ThemeConfig holds explicit node and edge colors
type ThemeConfig struct {
	File           graph.Style `yaml:"file" mapstructure:"file"`
	Class          graph.Style `yaml:"class" mapstructure:"class"`
	Method         graph.Style `yaml:"method" mapstructure:"method"`
	Field          graph.Style `yaml:"field" mapstructure:"field"`
	Parameter      graph.Style `yaml:"parameter" mapstructure:"parameter"`
	Shape          string      `yaml:"shape" mapstructure:"shape"`
	BorderRadius   int         `yaml:"border_radius" mapstructure:"border_radius"`
	EdgeColorLight string      `yaml:"edge_color_light" mapstructure:"edge_color_light"`
	EdgeColorDark  string      `yaml:"edge_color_dark" mapstructure:"edge_color_dark"`
}

// BatchConfig selects report files when walking a directory
type BatchConfig struct {
	Include []string `yaml:"include" mapstructure:"include"`
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	theme := graph.DefaultTheme()
	return &Config{
		Log: LogConfig{Level: "info"},
		Output: OutputConfig{
			Path:    "./weaver-out",
			Formats: []string{string(export.FormatJSON), string(export.FormatHTML)},
			Title:   "Data Clumps",
		},
		Graph: GraphConfig{
			LargeGraphThreshold: 1000,
		},
		Theme: ThemeConfig{
			File:           theme.File,
			Class:          theme.Class,
			Method:         theme.Method,
			Field:          theme.Field,
			Parameter:      theme.Parameter,
			Shape:          theme.Shape,
			BorderRadius:   theme.BorderRadius,
			EdgeColorLight: theme.EdgeColorLight,
			EdgeColorDark:  theme.EdgeColorDark,
		},
		Batch: BatchConfig{
			Include: []string{"**.json"},
			Exclude: []string{},
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// LoadConfig reads configuration from path with WEAVER_* environment
// overrides. A missing file yields the defaults (still subject to env).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so env overrides resolve.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.formats", d.Output.Formats)
	v.SetDefault("output.force", d.Output.Force)
	v.SetDefault("output.title", d.Output.Title)

	v.SetDefault("graph.dedupe_relations", d.Graph.DedupeRelations)
	v.SetDefault("graph.apply_to_file_path", d.Graph.ApplyToFilePath)
	v.SetDefault("graph.dark_mode", d.Graph.DarkMode)
	v.SetDefault("graph.large_graph_threshold", d.Graph.LargeGraphThreshold)

	styles := map[string]graph.Style{
		"file":      d.Theme.File,
		"class":     d.Theme.Class,
		"method":    d.Theme.Method,
		"field":     d.Theme.Field,
		"parameter": d.Theme.Parameter,
	}
	for name, s := range styles {
		v.SetDefault("theme."+name+".color", s.Color)
		v.SetDefault("theme."+name+".text_color", s.TextColor)
	}
	v.SetDefault("theme.shape", d.Theme.Shape)
	v.SetDefault("theme.border_radius", d.Theme.BorderRadius)
	v.SetDefault("theme.edge_color_light", d.Theme.EdgeColorLight)
	v.SetDefault("theme.edge_color_dark", d.Theme.EdgeColorDark)

	v.SetDefault("batch.include", d.Batch.Include)
	v.SetDefault("batch.exclude", d.Batch.Exclude)

	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks formats, colors and limits.
func (c *Config) Validate() error {
	var problems []string

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}
	for _, f := range c.Output.Formats {
		if _, err := export.ParseFormat(f); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if c.Graph.LargeGraphThreshold <= 0 {
		problems = append(problems, "graph.large_graph_threshold must be positive")
	}

	colors := map[string]string{
		"theme.file.color":           c.Theme.File.Color,
		"theme.file.text_color":      c.Theme.File.TextColor,
		"theme.class.color":          c.Theme.Class.Color,
		"theme.class.text_color":     c.Theme.Class.TextColor,
		"theme.method.color":         c.Theme.Method.Color,
		"theme.method.text_color":    c.Theme.Method.TextColor,
		"theme.field.color":          c.Theme.Field.Color,
		"theme.field.text_color":     c.Theme.Field.TextColor,
		"theme.parameter.color":      c.Theme.Parameter.Color,
		"theme.parameter.text_color": c.Theme.Parameter.TextColor,
		"theme.edge_color_light":     c.Theme.EdgeColorLight,
		"theme.edge_color_dark":      c.Theme.EdgeColorDark,
	}
	for _, key := range slices.Sorted(maps.Keys(colors)) {
		if !hexColor.MatchString(colors[key]) {
			problems = append(problems, fmt.Sprintf("%s: %q is not a hex color", key, colors[key]))
		}
	}

	if c.Watch.Debounce < 0 {
		problems = append(problems, "watch.debounce must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// GraphTheme builds the graph theme from the config.
func (c *Config) GraphTheme() *graph.Theme {
	return &graph.Theme{
		File:           c.Theme.File,
		Class:          c.Theme.Class,
		Method:         c.Theme.Method,
		Field:          c.Theme.Field,
		Parameter:      c.Theme.Parameter,
		Shape:          c.Theme.Shape,
		BorderRadius:   c.Theme.BorderRadius,
		EdgeColorLight: c.Theme.EdgeColorLight,
		EdgeColorDark:  c.Theme.EdgeColorDark,
	}
}

// GraphOptions maps the graph section onto builder options.
func (c *Config) GraphOptions() graph.Options {
	return graph.Options{
		DedupeRelations: c.Graph.DedupeRelations,
		ApplyToFilePath: c.Graph.ApplyToFilePath,
		DarkMode:        c.Graph.DarkMode,
	}
}

// SaveConfig writes configuration to a YAML file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
