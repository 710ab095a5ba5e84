// Package collider resolves point-in-mesh, ceiling and floor queries
// against triangle meshes and moves character objects through them.
package collider

import "math"

// Config bundles the settings of every collider component.
type Config struct {
	System SystemSettings `yaml:"system" toml:"system"`
	Object Settings       `yaml:"object" toml:"object"`
	Plane  PlaneSettings  `yaml:"plane" toml:"plane"`
}

// SystemSettings controls mesh admission, caching and the world floor.
type SystemSettings struct {
	MaxPlanesPerMesh int     `yaml:"max_planes_per_mesh" toml:"max_planes_per_mesh"`
	UseCache         bool    `yaml:"use_cache" toml:"use_cache"`
	CacheRadius      float64 `yaml:"cache_radius" toml:"cache_radius"`
	Floor            float64 `yaml:"floor" toml:"floor"` // world floor used when no floor mesh is below a point
}

// Settings controls how an Object moves.
type Settings struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`
	MaxVelocity float64 `yaml:"max_velocity" toml:"max_velocity"`
	Friction    float64 `yaml:"friction" toml:"friction"`
	SnapUp      float64 `yaml:"snap_up" toml:"snap_up"`
	SnapDown    float64 `yaml:"snap_down" toml:"snap_down"`
	// MinSlope is compared against a surface normal's Y component:
	// surfaces with normal.Y >= MinSlope are walkable.
	MinSlope float64 `yaml:"min_slope" toml:"min_slope"`
	Noclip   bool    `yaml:"noclip" toml:"noclip"`
}

// PlaneSettings holds plane classification tolerances.
type PlaneSettings struct {
	DotThreshold       float64 `yaml:"dot_threshold" toml:"dot_threshold"`
	CollisionThreshold float64 `yaml:"collision_threshold" toml:"collision_threshold"`
}

// MeshParams tags a mesh when it is added to a System.
type MeshParams struct {
	IsFloor  bool
	Disabled bool
}

// DefaultConfig returns a fresh Config with default values.
func DefaultConfig() Config {
	return Config{
		System: DefaultSystemSettings(),
		Object: DefaultSettings(),
		Plane:  DefaultPlaneSettings(),
	}
}

// DefaultSystemSettings returns the default system settings.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{
		MaxPlanesPerMesh: 200,
		UseCache:         false,
		CacheRadius:      20,
		Floor:            0,
	}
}

// DefaultSettings returns the default object settings.
func DefaultSettings() Settings {
	return Settings{
		Gravity:     10,
		MaxVelocity: 50,
		Friction:    0.5,
		SnapUp:      0.75,
		SnapDown:    0.5,
		MinSlope:    math.Pi / 5,
		Noclip:      false,
	}
}

// DefaultPlaneSettings returns the default plane tolerances.
func DefaultPlaneSettings() PlaneSettings {
	return PlaneSettings{
		DotThreshold:       0.001,
		CollisionThreshold: 0.5,
	}
}
