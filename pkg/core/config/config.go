// Package config loads engine settings from a YAML file, with working
// defaults when the file is absent so the binaries run with zero setup.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"intrinsic_valuation/pkg/core/engine"
	"intrinsic_valuation/pkg/core/valuation"
)

// Config is the file-backed settings surface. API keys stay in the
// environment (FMP_API_KEY, GEMINI_API_KEY, DATABASE_URL), never here.
type Config struct {
	Macro valuation.MacroAssumptions `yaml:"macro"`

	Horizon        int     `yaml:"horizon"`
	TerminalMethod string  `yaml:"terminal_method"`
	ExitMultiple   float64 `yaml:"exit_multiple"`
	MidYear        bool    `yaml:"mid_year"`

	Provider struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"provider"`

	LLM struct {
		Enabled  bool   `yaml:"enabled"`
		Provider string `yaml:"provider"` // "gemini" (default) or "googleai"
		Model    string `yaml:"model"`
	} `yaml:"llm"`

	Validator struct {
		MaxEBITDAMarginShare   float64 `yaml:"max_ebitda_margin_share"`
		ResetEBITDAMarginShare float64 `yaml:"reset_ebitda_margin_share"`
	} `yaml:"validator"`

	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

// Default returns the standard configuration.
func Default() Config {
	var c Config
	c.Macro = valuation.DefaultMacro()
	c.Horizon = 5
	c.TerminalMethod = string(valuation.TerminalGordon)
	c.ExitMultiple = 10.0
	c.Validator.MaxEBITDAMarginShare = 0.8
	c.Validator.ResetEBITDAMarginShare = 0.25
	c.Server.Port = 8080
	return c
}

// Load reads path and overlays it on the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if c.Horizon <= 0 {
		c.Horizon = 5
	}
	return c, nil
}

// EngineOptions converts the file settings into per-run options.
func (c Config) EngineOptions() engine.Options {
	method := valuation.TerminalMethod(c.TerminalMethod)
	if method != valuation.TerminalExitMultiple {
		method = valuation.TerminalGordon
	}
	return engine.Options{
		Horizon:        c.Horizon,
		TerminalMethod: method,
		ExitMultiple:   c.ExitMultiple,
		MidYear:        c.MidYear,
	}
}
