package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"solarcell/pkg/cell"
	"solarcell/pkg/report"
)

// File is the YAML configuration schema:
//
//	title: GaAs p-i-n Solar Cell
//	cell:
//	  jsc: 30.52638788
//	  j0: 1e-12
//	  n: 1.2
//	  vt: 0.02585
//	  rs: 0.001
//	  rsh: 10000
//	sweep:
//	  start: -0.1
//	  stop: 1.058312
//	  points: 500
//	incident_power: 100
//	measured:
//	  voc: 1.008312
//	  jsc: 30.52638788
//	  ff: 0.883105
//	  efficiency: 0.271821
//	  v_mpp: 0.915723
//	  j_mpp: 29.68373326
//
// Absent sections leave the corresponding Config values untouched.
type File struct {
	Title         string           `yaml:"title,omitempty"`
	Cell          *cell.Parameters `yaml:"cell,omitempty"`
	Sweep         *SweepSection    `yaml:"sweep,omitempty"`
	IncidentPower *float64         `yaml:"incident_power,omitempty"`
	Measured      *report.Measured `yaml:"measured,omitempty"`
}

// SweepSection overrides individual grid settings.
type SweepSection struct {
	Start  *float64 `yaml:"start,omitempty"`
	Stop   *float64 `yaml:"stop,omitempty"`
	Points *int     `yaml:"points,omitempty"`
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &f, nil
}

// Apply overlays the file's settings onto cfg. A file that sets a cell
// block replaces the whole parameter set; a file that sets a measured block
// replaces the measured values. Omitted blocks keep the existing values.
func (f *File) Apply(cfg *Config) {
	if f.Title != "" {
		cfg.Title = f.Title
	}
	if f.Cell != nil {
		cfg.Cell = *f.Cell
	}
	if f.Sweep != nil {
		if f.Sweep.Start != nil {
			cfg.SweepStart = *f.Sweep.Start
		}
		if f.Sweep.Stop != nil {
			cfg.SweepStop = *f.Sweep.Stop
		}
		if f.Sweep.Points != nil {
			cfg.SweepPoints = *f.Sweep.Points
		}
	}
	if f.IncidentPower != nil {
		cfg.IncidentPower = *f.IncidentPower
	}
	if f.Measured != nil {
		cfg.Measured = f.Measured
	}
}
