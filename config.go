package pagex

import "time"

// Config holds the tunable settings of the extraction pipeline.
type Config struct {
	IgnoreWords           []string
	TagsToRemove          []string
	TagsToDelete          []string
	RemoveStyleAttributes bool
	KeepAttributes        []string
	Timeout               time.Duration
	CleanedDataSave       bool
	MinChars              int
	MaxChars              int
	OutputDir             string
	DBPath                string
	LogFile               string

	Blacklist   BlacklistConfig
	Readability ReadabilityConfig
	Browser     BrowserConfig
}

// BlacklistConfig locates the blacklist list files.
type BlacklistConfig struct {
	Dir string
}

// ReadabilityConfig selects the cleaner behind the readability strategy.
type ReadabilityConfig struct {
	// Engine is "readability" or "trafilatura".
	Engine string
}

// BrowserConfig controls browser-mode fetching.
type BrowserConfig struct {
	// Driver is "rod" or "chromedp".
	Driver         string
	Workers        int
	SettleDelay    time.Duration
	ScrollDuration time.Duration
	ScrollStep     int
	ScrollPause    time.Duration
	FinalDelay     time.Duration
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		TagsToRemove:   []string{"a", "span", "font", "center"},
		TagsToDelete:   []string{"script", "style", "noscript"},
		KeepAttributes: []string{"src", "srcset", "data-lazy-src", "data-lazy-srcset", "alt", "href", "colspan", "rowspan"},
		Timeout:        15 * time.Second,
		MaxChars:       Unbounded,
		OutputDir:      ".",
		Blacklist:      BlacklistConfig{Dir: "blacklist"},
		Readability:    ReadabilityConfig{Engine: "readability"},
		Browser: BrowserConfig{
			Driver:         "rod",
			Workers:        2,
			SettleDelay:    3 * time.Second,
			ScrollDuration: 6 * time.Second,
			ScrollStep:     180,
			ScrollPause:    50 * time.Millisecond,
			FinalDelay:     time.Second,
		},
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return Errorf(EINVALID, "timeout_time must be positive")
	}
	if c.MinChars < 0 {
		return Errorf(EINVALID, "min_chars must not be negative")
	}
	if c.MaxChars != Unbounded && c.MaxChars < c.MinChars {
		return Errorf(EINVALID, "max_chars must be -1 or at least min_chars")
	}
	switch c.Readability.Engine {
	case "readability", "trafilatura":
	default:
		return Errorf(EINVALID, "unknown readability engine %q", c.Readability.Engine)
	}
	switch c.Browser.Driver {
	case "rod", "chromedp":
	default:
		return Errorf(EINVALID, "unknown browser driver %q", c.Browser.Driver)
	}
	if c.Browser.Workers < 1 {
		return Errorf(EINVALID, "browser workers must be at least 1")
	}
	return nil
}
