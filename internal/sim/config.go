// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package sim

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config describes a set of campaigns.
type Config struct {
	Programs        []string
	MaxFaults       int
	Workers         int
	MaxInstructions int
	Kinds           []Kind
	Report          string
}

type fileConfig struct {
	Programs        []string `toml:"programs"`
	MaxFaults       int      `toml:"max_faults"`
	Workers         int      `toml:"workers"`
	MaxInstructions int      `toml:"max_instructions"`
	Faults          []string `toml:"faults"`
	Report          string   `toml:"report"`
}

// DefaultConfig runs single fault campaigns against every built-in program.
func DefaultConfig() *Config {
	return &Config{
		Programs:        Names(),
		MaxFaults:       1,
		MaxInstructions: MaxInstructions,
	}
}

func parseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nop":
		return Nop, nil
	case "bitflip":
		return BitFlip, nil
	default:
		return 0, fmt.Errorf("unknown fault model %q", s)
	}
}

// LoadConfig reads a TOML campaign description, unset keys keep their
// DefaultConfig value.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)

	if err != nil {
		return nil, fmt.Errorf("load campaign config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown campaign config key %q", undecoded[0].String())
	}

	if meta.IsDefined("programs") {
		conf.Programs = nil

		for _, p := range raw.Programs {
			if p = strings.TrimSpace(p); p != "" {
				conf.Programs = append(conf.Programs, p)
			}
		}
	}

	if meta.IsDefined("max_faults") {
		conf.MaxFaults = raw.MaxFaults
	}

	if meta.IsDefined("workers") {
		conf.Workers = raw.Workers
	}

	if meta.IsDefined("max_instructions") {
		conf.MaxInstructions = raw.MaxInstructions
	}

	if meta.IsDefined("faults") {
		conf.Kinds = nil

		for _, s := range raw.Faults {
			k, err := parseKind(s)

			if err != nil {
				return nil, err
			}

			conf.Kinds = append(conf.Kinds, k)
		}
	}

	if meta.IsDefined("report") {
		conf.Report = strings.TrimSpace(raw.Report)
	}

	if err = conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if len(c.Programs) == 0 {
		return fmt.Errorf("no programs selected")
	}

	for _, name := range c.Programs {
		if _, ok := programs[name]; !ok {
			return fmt.Errorf("unknown program %q", name)
		}
	}

	if c.MaxFaults < 1 || c.MaxFaults > 2 {
		return fmt.Errorf("max_faults must be 1 or 2, got %d", c.MaxFaults)
	}

	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d", c.Workers)
	}

	if c.MaxInstructions <= 0 {
		return fmt.Errorf("invalid max_instructions %d", c.MaxInstructions)
	}

	return nil
}

// Campaigns returns a campaign for each configured program.
func (c *Config) Campaigns() (campaigns []*Campaign, err error) {
	for _, name := range c.Programs {
		p, err := Lookup(name)

		if err != nil {
			return nil, err
		}

		campaigns = append(campaigns, &Campaign{
			Program:   p,
			MaxFaults: c.MaxFaults,
			Workers:   c.Workers,
			Max:       c.MaxInstructions,
			Kinds:     c.Kinds,
		})
	}

	return
}
