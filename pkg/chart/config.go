package chart

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"
)

// Margin around the plotting area, in pixels.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// BubbleOptions tunes the birth/death rate chart.
type BubbleOptions struct {
	// XFloor is the lower bound of the death rate axis.
	XFloor       float64 `json:"x_floor"`
	Radius       float64 `json:"radius"`
	LegendRadius float64 `json:"legend_radius"`
	LegendSize   float64 `json:"legend_size"`
	DelayStepMS  float64 `json:"delay_step_ms"`
	DurationMS   float64 `json:"duration_ms"`
	DimOpacity   float64 `json:"dim_opacity"`
}

// MigrationOptions tunes the emigrants/immigrants chart.
type MigrationOptions struct {
	FromYear        int     `json:"from_year"`
	DotRadius       float64 `json:"dot_radius"`
	StrokeWidth     float64 `json:"stroke_width"`
	EmigrantsColor  string  `json:"emigrants_color"`
	ImmigrantsColor string  `json:"immigrants_color"`
	TooltipOffsetX  float64 `json:"tooltip_offset_x"`
	TooltipOffsetY  float64 `json:"tooltip_offset_y"`
}

// Config is passed to every chart constructor. Nothing is shared
// between chart instances besides the values copied out of it.
type Config struct {
	Margin      Margin           `json:"margin"`
	OuterWidth  float64          `json:"outer_width"`
	OuterHeight float64          `json:"outer_height"`
	Bubble      BubbleOptions    `json:"bubble"`
	Migration   MigrationOptions `json:"migration"`
}

func DefaultConfig() Config {
	return Config{
		Margin:      Margin{Top: 50, Right: 200, Bottom: 60, Left: 50},
		OuterWidth:  900,
		OuterHeight: 650,
		Bubble: BubbleOptions{
			XFloor:       8,
			Radius:       10,
			LegendRadius: 7,
			LegendSize:   20,
			DelayStepMS:  100,
			DurationMS:   2000,
			DimOpacity:   0.05,
		},
		Migration: MigrationOptions{
			FromYear:        2008,
			DotRadius:       8,
			StrokeWidth:     1.5,
			EmigrantsColor:  "steelblue",
			ImmigrantsColor: "red",
			TooltipOffsetX:  10,
			TooltipOffsetY:  -15,
		},
	}
}

// Width of the plotting area.
func (c Config) Width() float64 { return c.OuterWidth - c.Margin.Left - c.Margin.Right }

// Height of the plotting area.
func (c Config) Height() float64 { return c.OuterHeight - c.Margin.Top - c.Margin.Bottom }

func (o BubbleOptions) delay(i int) time.Duration {
	return time.Duration(float64(i) * o.DelayStepMS * float64(time.Millisecond))
}

func (o BubbleOptions) duration() time.Duration {
	return time.Duration(o.DurationMS * float64(time.Millisecond))
}

// Validate rejects configurations that cannot produce a plotting area.
func (c Config) Validate() error {
	if c.Width() <= 0 || c.Height() <= 0 {
		return fmt.Errorf("plot area %vx%v is empty; check outer size and margins", c.Width(), c.Height())
	}
	if c.Bubble.DimOpacity < 0 || c.Bubble.DimOpacity > 1 {
		return fmt.Errorf("dim opacity %v outside [0,1]", c.Bubble.DimOpacity)
	}
	return nil
}

// LoadConfig reads a JSON file over the defaults, so the file only needs
// the keys it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config '%s': %w", path, err)
	}
	return cfg, cfg.Validate()
}
