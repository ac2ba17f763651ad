// Package script drives a session headlessly from a YAML list of steps, the
// same actions a user would perform through the UI.
package script

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Point is a screen position or a pointer delta in pixels.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Drag moves a control point and releases it.
type Drag struct {
	Corner int        `yaml:"corner"`
	To     [3]float32 `yaml:"to,flow"`
}

// Step is a single action. Exactly one field must be set.
type Step struct {
	Scale      *[3]float32 `yaml:"scale,flow,omitempty"`
	Commit     bool        `yaml:"commit,omitempty"`
	Orbit      *Point      `yaml:"orbit,omitempty"`
	Zoom       *float32    `yaml:"zoom,omitempty"`
	Hover      *Point      `yaml:"hover,omitempty"`
	Click      *Point      `yaml:"click,omitempty"`
	SelectFace *int        `yaml:"select_face,omitempty"`
	Color      string      `yaml:"color,omitempty"`
	Upload     string      `yaml:"upload,omitempty"`
	Drag       *Drag       `yaml:"drag,omitempty"`
	Rotate     bool        `yaml:"rotate,omitempty"`
	FlipV      bool        `yaml:"vflip,omitempty"`
	FlipH      bool        `yaml:"hflip,omitempty"`
	Finish     bool        `yaml:"finish,omitempty"`
}

// Action returns the name of the step's action.
func (s Step) Action() (string, error) {
	var set []string
	add := func(ok bool, name string) {
		if ok {
			set = append(set, name)
		}
	}
	add(s.Scale != nil, "scale")
	add(s.Commit, "commit")
	add(s.Orbit != nil, "orbit")
	add(s.Zoom != nil, "zoom")
	add(s.Hover != nil, "hover")
	add(s.Click != nil, "click")
	add(s.SelectFace != nil, "select_face")
	add(s.Color != "", "color")
	add(s.Upload != "", "upload")
	add(s.Drag != nil, "drag")
	add(s.Rotate, "rotate")
	add(s.FlipV, "vflip")
	add(s.FlipH, "hflip")
	add(s.Finish, "finish")

	switch len(set) {
	case 0:
		return "", fmt.Errorf("step has no action")
	case 1:
		return set[0], nil
	default:
		return "", fmt.Errorf("step has several actions: %s", strings.Join(set, ", "))
	}
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	for i, st := range sc.Steps {
		if _, err := st.Action(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

// Load reads a script from path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
