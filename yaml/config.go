// Package yaml loads pagex configuration files using gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/pagex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout of pagex.Config.
type fileConfig struct {
	IgnoreWords           []string `yaml:"ignore_words"`
	TagsToRemove          []string `yaml:"tags_to_remove"`
	TagsToDelete          []string `yaml:"tags_to_delete"`
	RemoveStyleAttributes bool     `yaml:"remove_style_attributes"`
	KeepAttributes        []string `yaml:"keep_attributes"`
	Timeout               duration `yaml:"timeout_time"`
	CleanedDataSave       bool     `yaml:"cleaned_data_save"`
	MinChars              int      `yaml:"min_chars"`
	MaxChars              int      `yaml:"max_chars"`
	OutputDir             string   `yaml:"output_dir"`
	DBPath                string   `yaml:"db_path"`
	LogFile               string   `yaml:"log_file"`

	Blacklist struct {
		Dir string `yaml:"dir"`
	} `yaml:"blacklist"`

	Readability struct {
		Engine string `yaml:"engine"`
	} `yaml:"readability"`

	Browser struct {
		Driver         string   `yaml:"driver"`
		Workers        int      `yaml:"workers"`
		SettleDelay    duration `yaml:"settle_delay"`
		ScrollDuration duration `yaml:"scroll_duration"`
		ScrollStep     int      `yaml:"scroll_step"`
		ScrollPause    duration `yaml:"scroll_pause"`
		FinalDelay     duration `yaml:"final_delay"`
	} `yaml:"browser"`
}

// duration accepts a number of seconds (15, 0.5) or a Go duration
// string ("15s", "50ms").
type duration time.Duration

func (d *duration) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!int", "!!float":
		var secs float64
		if err := n.Decode(&secs); err != nil {
			return err
		}
		*d = duration(secs * float64(time.Second))
		return nil
	}
	v, err := time.ParseDuration(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", n.Line, n.Value)
	}
	*d = duration(v)
	return nil
}

func fromConfig(c *pagex.Config) fileConfig {
	var fc fileConfig
	fc.IgnoreWords = c.IgnoreWords
	fc.TagsToRemove = c.TagsToRemove
	fc.TagsToDelete = c.TagsToDelete
	fc.RemoveStyleAttributes = c.RemoveStyleAttributes
	fc.KeepAttributes = c.KeepAttributes
	fc.Timeout = duration(c.Timeout)
	fc.CleanedDataSave = c.CleanedDataSave
	fc.MinChars = c.MinChars
	fc.MaxChars = c.MaxChars
	fc.OutputDir = c.OutputDir
	fc.DBPath = c.DBPath
	fc.LogFile = c.LogFile
	fc.Blacklist.Dir = c.Blacklist.Dir
	fc.Readability.Engine = c.Readability.Engine
	fc.Browser.Driver = c.Browser.Driver
	fc.Browser.Workers = c.Browser.Workers
	fc.Browser.SettleDelay = duration(c.Browser.SettleDelay)
	fc.Browser.ScrollDuration = duration(c.Browser.ScrollDuration)
	fc.Browser.ScrollStep = c.Browser.ScrollStep
	fc.Browser.ScrollPause = duration(c.Browser.ScrollPause)
	fc.Browser.FinalDelay = duration(c.Browser.FinalDelay)
	return fc
}

func (fc fileConfig) config() *pagex.Config {
	return &pagex.Config{
		IgnoreWords:           fc.IgnoreWords,
		TagsToRemove:          fc.TagsToRemove,
		TagsToDelete:          fc.TagsToDelete,
		RemoveStyleAttributes: fc.RemoveStyleAttributes,
		KeepAttributes:        fc.KeepAttributes,
		Timeout:               time.Duration(fc.Timeout),
		CleanedDataSave:       fc.CleanedDataSave,
		MinChars:              fc.MinChars,
		MaxChars:              fc.MaxChars,
		OutputDir:             fc.OutputDir,
		DBPath:                fc.DBPath,
		LogFile:               fc.LogFile,
		Blacklist:             pagex.BlacklistConfig{Dir: fc.Blacklist.Dir},
		Readability:           pagex.ReadabilityConfig{Engine: fc.Readability.Engine},
		Browser: pagex.BrowserConfig{
			Driver:         fc.Browser.Driver,
			Workers:        fc.Browser.Workers,
			SettleDelay:    time.Duration(fc.Browser.SettleDelay),
			ScrollDuration: time.Duration(fc.Browser.ScrollDuration),
			ScrollStep:     fc.Browser.ScrollStep,
			ScrollPause:    time.Duration(fc.Browser.ScrollPause),
			FinalDelay:     time.Duration(fc.Browser.FinalDelay),
		},
	}
}

// Decode reads a YAML document from r over pagex.DefaultConfig. Keys
// absent from the document keep their defaults; unknown keys are an error.
func Decode(r io.Reader) (*pagex.Config, error) {
	fc := fromConfig(pagex.DefaultConfig())

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, pagex.Errorf(pagex.EINVALID, "parse config: %v", err)
	}

	cfg := fc.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads the config file at path.
func LoadConfig(path string) (*pagex.Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pagex.Errorf(pagex.ENOTFOUND, "config file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Decode(bytes.NewReader(b))
}
