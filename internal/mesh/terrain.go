package mesh

import "fmt"

// TerrainCode classifies the surface of a triangle.
type TerrainCode uint8

// Terrain classification constants.
const (
	TerrainFairway TerrainCode = iota
	TerrainRough
	TerrainGreen
	TerrainBunker
	TerrainWater
	TerrainTee
	TerrainPath
	TerrainOutOfBounds
)

// String returns a human-readable terrain name.
func (c TerrainCode) String() string {
	switch c {
	case TerrainFairway:
		return "Fairway"
	case TerrainRough:
		return "Rough"
	case TerrainGreen:
		return "Green"
	case TerrainBunker:
		return "Bunker"
	case TerrainWater:
		return "Water"
	case TerrainTee:
		return "Tee"
	case TerrainPath:
		return "Path"
	case TerrainOutOfBounds:
		return "OutOfBounds"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// IsWalkable returns true if the terrain allows walking.
func (c TerrainCode) IsWalkable() bool {
	return c != TerrainWater && c != TerrainOutOfBounds
}

// SpeedModifier returns the movement speed multiplier on this terrain.
// Unwalkable terrain returns 0.
func (c TerrainCode) SpeedModifier() float32 {
	switch c {
	case TerrainFairway, TerrainTee:
		return 1.0
	case TerrainGreen:
		return 1.05
	case TerrainPath:
		return 1.15
	case TerrainRough:
		return 0.75
	case TerrainBunker:
		return 0.5
	default:
		return 0
	}
}
