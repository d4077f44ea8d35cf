package noteshade

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidConfig is wrapped by every validation error from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the JSON document read by the preview tool. Fields missing from
// the document keep their DefaultConfig values.
type Config struct {
	BorderPixels float64 `json:"border_pixels"`
	BorderTint   float64 `json:"border_tint"`
	Clamp        bool    `json:"clamp"`

	// NoteColor is the default note color, "#rrggbb".
	NoteColor string `json:"note_color"`
	// Background is the color behind the notes, "#rrggbb".
	Background string `json:"background"`

	Width  int `json:"width"`
	Height int `json:"height"`

	Notes []NoteConfig `json:"notes,omitempty"`
}

// NoteConfig describes one note in pixels. An empty Color uses
// Config.NoteColor.
type NoteConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color,omitempty"`
}

// DefaultConfig returns the default shader style, a dark background with a
// deep red note color, and a 640x480 window.
func DefaultConfig() Config {
	return Config{
		BorderPixels: DefaultStyle.BorderPixels,
		BorderTint:   DefaultStyle.BorderTint,
		Clamp:        DefaultStyle.Clamp,
		NoteColor:    "#910000",
		Background:   "#1e1e1e",
		Width:        640,
		Height:       480,
	}
}

// LoadConfig parses a JSON config on top of DefaultConfig and validates it.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and parses the JSON config at path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and color syntax.
func (c Config) Validate() error {
	if !(c.BorderPixels >= 0) || math.IsInf(c.BorderPixels, 0) {
		return fmt.Errorf("%w: border_pixels %v must be a finite value >= 0", ErrInvalidConfig, c.BorderPixels)
	}
	if !(c.BorderTint >= 0) || math.IsInf(c.BorderTint, 0) {
		return fmt.Errorf("%w: border_tint %v must be a finite value >= 0", ErrInvalidConfig, c.BorderTint)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if _, err := ParseHexColor(c.NoteColor); err != nil {
		return fmt.Errorf("%w: note_color: %w", ErrInvalidConfig, err)
	}
	if _, err := ParseHexColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalidConfig, err)
	}
	for i, n := range c.Notes {
		if n.Color == "" {
			continue
		}
		if _, err := ParseHexColor(n.Color); err != nil {
			return fmt.Errorf("%w: notes[%d].color: %w", ErrInvalidConfig, i, err)
		}
	}
	return nil
}

// Style returns the shader parameters of c.
func (c Config) Style() Style {
	return Style{
		BorderPixels: c.BorderPixels,
		BorderTint:   c.BorderTint,
		Clamp:        c.Clamp,
	}
}

// BackgroundColor returns the parsed background color.
func (c Config) BackgroundColor() (Color, error) {
	return ParseHexColor(c.Background)
}

// ResolveNotes converts the configured notes into Notes. With no notes
// configured it returns one note of the default color covering the middle
// half of the window.
func (c Config) ResolveNotes() ([]Note, error) {
	def, err := ParseHexColor(c.NoteColor)
	if err != nil {
		return nil, fmt.Errorf("note_color: %w", err)
	}
	if len(c.Notes) == 0 {
		w, h := float64(c.Width), float64(c.Height)
		return []Note{{
			Bounds: Rect{X: w / 4, Y: h / 4, Width: w / 2, Height: h / 2},
			Color:  def,
		}}, nil
	}
	notes := make([]Note, len(c.Notes))
	for i, n := range c.Notes {
		col := def
		if n.Color != "" {
			if col, err = ParseHexColor(n.Color); err != nil {
				return nil, fmt.Errorf("notes[%d].color: %w", i, err)
			}
		}
		notes[i] = Note{
			Bounds: Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height},
			Color:  col,
		}
	}
	return notes, nil
}
