package scene

import (
	gomath "math"

	"github.com/Faultbox/polygon-tps/pkg/math"
)

// Ground grid defaults.
const (
	DefaultCellSize   = 0.5
	DefaultStepHeight = 0.4
)

type cell struct {
	blocked bool
	height  float32
}

// Ground is a walkability grid rasterised from a layout's box footprints.
// Boxes that rise past the step height block their cells, lower boxes raise
// the floor to their top and boxes that start above the step are overhead.
// Points outside the grid are open floor at height 0.
type Ground struct {
	Cols     int
	Rows     int
	CellSize float32

	originX float32
	originZ float32
	cells   []cell
}

// NewGround builds the grid for l.
func NewGround(l *Layout, cellSize, step float32) *Ground {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	g := &Ground{CellSize: cellSize}
	if len(l.Boxes) == 0 {
		return g
	}

	minX, minZ := l.Boxes[0].Min.X, l.Boxes[0].Min.Z
	maxX, maxZ := l.Boxes[0].Max.X, l.Boxes[0].Max.Z
	for _, b := range l.Boxes[1:] {
		minX = min(minX, b.Min.X)
		minZ = min(minZ, b.Min.Z)
		maxX = max(maxX, b.Max.X)
		maxZ = max(maxZ, b.Max.Z)
	}
	g.originX = floorTo(minX, cellSize)
	g.originZ = floorTo(minZ, cellSize)
	g.Cols = int(gomath.Ceil(float64((maxX - g.originX) / cellSize)))
	g.Rows = int(gomath.Ceil(float64((maxZ - g.originZ) / cellSize)))
	g.cells = make([]cell, g.Cols*g.Rows)

	for _, b := range l.Boxes {
		if b.Min.Y >= step {
			continue
		}
		c0, r0 := g.WorldToCell(b.Min.X, b.Min.Z)
		c1 := int(gomath.Ceil(float64((b.Max.X-g.originX)/cellSize))) - 1
		r1 := int(gomath.Ceil(float64((b.Max.Z-g.originZ)/cellSize))) - 1
		for r := max(r0, 0); r <= min(r1, g.Rows-1); r++ {
			for c := max(c0, 0); c <= min(c1, g.Cols-1); c++ {
				cl := &g.cells[r*g.Cols+c]
				if b.Max.Y > step {
					cl.blocked = true
				} else {
					cl.height = max(cl.height, b.Max.Y)
				}
			}
		}
	}
	return g
}

func floorTo(v, step float32) float32 {
	return float32(gomath.Floor(float64(v/step))) * step
}

// WorldToCell converts a ground-plane point to cell coordinates. The result
// may lie outside the grid.
func (g *Ground) WorldToCell(x, z float32) (col, row int) {
	col = int(gomath.Floor(float64((x - g.originX) / g.CellSize)))
	row = int(gomath.Floor(float64((z - g.originZ) / g.CellSize)))
	return col, row
}

// CellToWorld returns the centre of a cell on the floor.
func (g *Ground) CellToWorld(col, row int) math.Vec3 {
	return math.Vec3{
		X: g.originX + (float32(col)+0.5)*g.CellSize,
		Y: g.cellAt(col, row).height,
		Z: g.originZ + (float32(row)+0.5)*g.CellSize,
	}
}

func (g *Ground) cellAt(col, row int) cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return cell{}
	}
	return g.cells[row*g.Cols+col]
}

// IsWalkable reports whether the point is outside every blocking footprint.
func (g *Ground) IsWalkable(x, z float32) bool {
	return !g.cellAt(g.WorldToCell(x, z)).blocked
}

// Height returns the floor height at the point.
func (g *Ground) Height(x, z float32) float32 {
	return g.cellAt(g.WorldToCell(x, z)).height
}
