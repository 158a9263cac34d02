package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/polygon-tps/internal/engine/picking"
	"github.com/Faultbox/polygon-tps/pkg/math"
)

// ErrUnsupportedLayout is returned for layout files that are neither YAML
// nor Tiled TMX.
var ErrUnsupportedLayout = errors.New("scene: unsupported layout format")

// Box is one collider in a layout.
type Box struct {
	Name  string    `yaml:"name"`
	Min   math.Vec3 `yaml:"min"`
	Max   math.Vec3 `yaml:"max"`
	Layer int       `yaml:"layer"`
	Tag   string    `yaml:"tag"`
}

// Layout is a static arrangement of colliders.
type Layout struct {
	Boxes []Box `yaml:"boxes"`
}

// Apply adds every box in the layout to w.
func (l *Layout) Apply(w *World) {
	for _, b := range l.Boxes {
		w.AddCollider(b.Name, picking.NewAABB(b.Min, b.Max), b.Layer, b.Tag)
	}
}

// LoadLayout reads a layout from path, choosing the format by extension.
func LoadLayout(path string) (*Layout, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read layout: %w", err)
		}
		return ParseYAML(data)
	case ".tmx":
		return LoadTMX(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayout, path)
	}
}

// ParseYAML parses a YAML layout.
func ParseYAML(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return &l, nil
}

// Tiled maps are top-down: object X maps to world X and object Y to world
// Z, scaled so one tile is one world unit. Each object's properties may
// set "tag", "layer", "elevation" and "height" (default 2).
const defaultBoxHeight = 2.0

// LoadTMX reads colliders from every object group of a Tiled map.
func LoadTMX(fsys fs.FS, name string) (*Layout, error) {
	m, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", name, err)
	}

	unit := float64(m.TileWidth)
	if unit <= 0 {
		unit = 1
	}

	var l Layout
	for _, og := range m.ObjectGroups {
		for _, o := range og.Objects {
			height := o.Properties.GetFloat("height")
			if height == 0 {
				height = defaultBoxHeight
			}
			elevation := o.Properties.GetFloat("elevation")

			name := o.Name
			if name == "" {
				name = fmt.Sprintf("%s#%d", og.Name, o.ID)
			}
			tag := o.Properties.GetString("tag")
			if tag == "" {
				tag = o.Class
			}

			l.Boxes = append(l.Boxes, Box{
				Name: name,
				Min: math.Vec3{
					X: float32(o.X / unit),
					Y: float32(elevation),
					Z: float32(o.Y / unit),
				},
				Max: math.Vec3{
					X: float32((o.X + o.Width) / unit),
					Y: float32(elevation + height),
					Z: float32((o.Y + o.Height) / unit),
				},
				Layer: o.Properties.GetInt("layer"),
				Tag:   tag,
			})
		}
	}
	return &l, nil
}
