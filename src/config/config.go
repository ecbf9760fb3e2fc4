// Package config gathers the runtime settings: built-in defaults, an optional
// ini file, then command-line flags (bound in main) on top.
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"lifeoverlay/src/overlay"
	"lifeoverlay/src/universe"
)

const (
	ViewConsole  = "console"
	ViewWindow   = "window"
	ViewHeadless = "headless"

	FeedDemo  = "demo"
	FeedStdin = "stdin"
	FeedNone  = "none"

	PatternRandom = "random"
	PatternNone   = "none"
)

//Config is the complete application configuration
type Config struct {
	Universe universe.Options
	Overlay  overlay.Config

	Engine  string
	Pattern string //random, none or a template name

	Feed         string
	DemoInterval time.Duration
	DemoMax      float64
	DemoStart    float64

	View    string
	Scale   int
	JSON    bool
	LogFile string
}

//Default returns the standard configuration
func Default() *Config {
	return &Config{
		Universe:     universe.DefaultUniverseOptions,
		Overlay:      overlay.DefaultConfig(),
		Engine:       "base",
		Pattern:      PatternRandom,
		Feed:         FeedDemo,
		DemoInterval: 5 * time.Second,
		DemoMax:      250,
		DemoStart:    1000,
		View:         ViewConsole,
		Scale:        4,
	}
}

var loadOptions = ini.LoadOptions{
	InsensitiveSections:     true,
	InsensitiveKeys:         true,
	SkipUnrecognizableLines: true,
}

//Load reads an ini file over the defaults
func Load(path string) (*Config, error) {
	c := Default()
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

//LoadFile applies the keys found in the ini file at path
//keys with invalid values keep their current value
func (c *Config) LoadFile(path string) error {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	c.apply(f)
	return nil
}

//LoadBytes applies ini data, used for embedded or generated configuration
func (c *Config) LoadBytes(data []byte) error {
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.apply(f)
	return nil
}

func (c *Config) apply(f *ini.File) {
	grid := f.Section("grid")
	setInt(grid, "width", &c.Universe.Width, 1)
	setInt(grid, "height", &c.Universe.Height, 1)
	setDuration(grid, "interval", &c.Universe.Interval)
	setDuration(grid, "frame_interval", &c.Universe.FrameInterval)
	setInt(grid, "max_steps", &c.Universe.MaxSteps, 0)
	setBool(grid, "stop_on_still", &c.Universe.StopOnStill)
	if k, err := grid.GetKey("seed"); err == nil {
		if v, err := k.Int64(); err == nil {
			c.Universe.Seed = v
			c.Overlay.Seed = v
		}
	}
	setString(grid, "engine", &c.Engine)
	setString(grid, "pattern", &c.Pattern)

	ov := f.Section("overlay")
	setDuration(ov, "pending_delay", &c.Overlay.PendingDelay)
	setDuration(ov, "initial_delay", &c.Overlay.InitialDelay)
	setInt(ov, "immune_padding", &c.Overlay.ImmunePadding, 0)
	setInt(ov, "placement_attempts", &c.Overlay.PlacementAttempts, 1)
	setDuration(ov, "tween_duration", &c.Overlay.TweenDuration)
	setBool(ov, "immune_total", &c.Overlay.ImmuneTotal)

	fd := f.Section("feed")
	setString(fd, "source", &c.Feed)
	setDuration(fd, "demo_interval", &c.DemoInterval)
	setFloat(fd, "demo_max", &c.DemoMax)
	setFloat(fd, "demo_start", &c.DemoStart)

	view := f.Section("view")
	setString(view, "mode", &c.View)
	setInt(view, "scale", &c.Scale, 1)
	setBool(view, "json", &c.JSON)
	setString(view, "log", &c.LogFile)
}

//Validate reports settings the application cannot run with
func (c *Config) Validate() error {
	if _, ok := universe.Engines[c.Engine]; !ok {
		return fmt.Errorf("unknown engine %q, expected one of %s", c.Engine, strings.Join(universe.EngineNames(), ", "))
	}
	switch c.View {
	case ViewConsole, ViewWindow, ViewHeadless:
	default:
		return fmt.Errorf("unknown view %q", c.View)
	}
	switch c.Feed {
	case FeedDemo, FeedStdin, FeedNone:
	default:
		return fmt.Errorf("unknown feed %q", c.Feed)
	}
	if c.Feed == FeedStdin && c.View == ViewConsole {
		return fmt.Errorf("the stdin feed cannot be used with the console view, the terminal owns stdin")
	}
	if c.Universe.Width <= 0 || c.Universe.Height <= 0 {
		return fmt.Errorf("grid size %dx%d", c.Universe.Width, c.Universe.Height)
	}
	return nil
}

//PathFromArgs finds the -c/--config value before the flags are parsed,
//so the file can provide the defaults the flags override
func PathFromArgs(args []string) string {
	for i, a := range args {
		for _, name := range []string{"-c", "--config"} {
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(a, name+"=") {
				return strings.TrimPrefix(a, name+"=")
			}
		}
	}
	return ""
}

func setInt(s *ini.Section, key string, dst *int, min int) {
	k, err := s.GetKey(key)
	if err != nil {
		return
	}
	if v, err := k.Int(); err == nil && v >= min {
		*dst = v
	}
}

func setFloat(s *ini.Section, key string, dst *float64) {
	k, err := s.GetKey(key)
	if err != nil {
		return
	}
	if v, err := k.Float64(); err == nil && v >= 0 {
		*dst = v
	}
}

func setDuration(s *ini.Section, key string, dst *time.Duration) {
	k, err := s.GetKey(key)
	if err != nil {
		return
	}
	if v, err := k.Duration(); err == nil && v >= 0 {
		*dst = v
	}
}

func setBool(s *ini.Section, key string, dst *bool) {
	k, err := s.GetKey(key)
	if err != nil {
		return
	}
	if v, err := k.Bool(); err == nil {
		*dst = v
	}
}

func setString(s *ini.Section, key string, dst *string) {
	k, err := s.GetKey(key)
	if err != nil {
		return
	}
	if v := strings.TrimSpace(k.String()); v != "" {
		*dst = v
	}
}
