package options

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/richinsley/goswizzle/merge"
)

// Job is one merge of two inputs into one output.
type Job struct {
	A      string     `yaml:"a"`
	B      string     `yaml:"b"`
	Mode   merge.Mode `yaml:"mode"`
	Output string     `yaml:"output"`
	Frame  int        `yaml:"frame,omitempty"`
}

// Config is a job file. Top-level settings apply to every job.
type Config struct {
	CPU        bool   `yaml:"cpu,omitempty"`
	Headless   *bool  `yaml:"headless,omitempty"`
	Filter     string `yaml:"filter,omitempty"`
	Wrap       string `yaml:"wrap,omitempty"`
	FFMPEGPath string `yaml:"ffmpeg,omitempty"`
	Jobs       []Job  `yaml:"jobs"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks that every job names both inputs and an output.
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return errors.New("no jobs defined")
	}
	for i, j := range c.Jobs {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}
	return nil
}

func (j Job) Validate() error {
	switch {
	case j.A == "":
		return errors.New("input a is required")
	case j.B == "":
		return errors.New("input b is required")
	case j.Output == "":
		return errors.New("output is required")
	case !j.Mode.Valid():
		return fmt.Errorf("invalid mode %d", int(j.Mode))
	case j.Frame < 0:
		return fmt.Errorf("invalid frame %d", j.Frame)
	}
	return nil
}

// FromFlags builds a single-job config from the command line.
func FromFlags(o *MergeOptions) (*Config, error) {
	mode, err := merge.ParseMode(*o.Mode)
	if err != nil {
		return nil, err
	}
	headless := *o.Headless
	c := &Config{
		CPU:        *o.CPU,
		Headless:   &headless,
		Filter:     *o.Filter,
		Wrap:       *o.Wrap,
		FFMPEGPath: *o.FFMPEGPath,
		Jobs: []Job{{
			A:      *o.InputA,
			B:      *o.InputB,
			Mode:   mode,
			Output: *o.OutputFile,
			Frame:  *o.Frame,
		}},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Overlay fills settings the job file left empty from the command line.
// Explicitly set file values win.
func (c *Config) Overlay(o *MergeOptions) {
	if *o.CPU {
		c.CPU = true
	}
	if c.Headless == nil {
		headless := *o.Headless
		c.Headless = &headless
	}
	if c.Filter == "" {
		c.Filter = *o.Filter
	}
	if c.Wrap == "" {
		c.Wrap = *o.Wrap
	}
	if c.FFMPEGPath == "" {
		c.FFMPEGPath = *o.FFMPEGPath
	}
}
