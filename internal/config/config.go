// Package config handles configuration loading and management.
package config

import (
	"fmt"

	"github.com/lumina3d/voxelmesh/internal/mesher"
	"github.com/lumina3d/voxelmesh/internal/terrain"
	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// Config holds all settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Terrain TerrainConfig `yaml:"terrain"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds the extraction pipeline tuning.
type MeshConfig struct {
	ChunkXZ     int     `yaml:"chunk_xz"`
	ChunkY      int     `yaml:"chunk_y"`
	Pad         int     `yaml:"pad"`
	IsoLevel    float32 `yaml:"iso_level"`
	YOffset     float32 `yaml:"y_offset"`
	SnapEpsilon float32 `yaml:"snap_epsilon"`
	WaterLevel  float32 `yaml:"water_level"`

	// Channels lists the 16 material names assigned to the blend channels,
	// in channel order. Empty means the standard table.
	Channels []string `yaml:"channels"`
}

// TerrainConfig holds the procedural landscape settings.
type TerrainConfig struct {
	Seed          int64   `yaml:"seed"`
	BaseHeight    float64 `yaml:"base_height"`
	HeightScale   float64 `yaml:"height_scale"`
	NoiseScale    float64 `yaml:"noise_scale"`
	Octaves       int     `yaml:"octaves"`
	CaveScale     float64 `yaml:"cave_scale"`
	CaveThreshold float64 `yaml:"cave_threshold"`
}

// ServerConfig holds the mesh streaming server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Radius is how many chunks around the origin are streamed to a newly
	// connected viewer.
	Radius int `yaml:"radius"`
	// Workers is the mesh worker pool size; 0 means one per CPU.
	Workers int `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	t := terrain.DefaultSettings()
	m := mesher.DefaultConfig()
	return &Config{
		Mesh: MeshConfig{
			ChunkXZ:     m.ChunkXZ,
			ChunkY:      m.ChunkY,
			Pad:         m.Pad,
			IsoLevel:    m.IsoLevel,
			YOffset:     m.YOffset,
			SnapEpsilon: m.SnapEpsilon,
			WaterLevel:  m.WaterLevel,
		},
		Terrain: TerrainConfig{
			Seed:          t.Seed,
			BaseHeight:    t.BaseHeight,
			HeightScale:   t.HeightScale,
			NoiseScale:    t.NoiseScale,
			Octaves:       t.Octaves,
			CaveScale:     t.CaveScale,
			CaveThreshold: t.CaveThreshold,
		},
		Server: ServerConfig{
			Addr:   "127.0.0.1:8090",
			Radius: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// MesherConfig converts the yaml settings into the mesher's configuration,
// resolving the channel table.
func (m MeshConfig) MesherConfig() (mesher.Config, error) {
	cfg := mesher.Config{
		ChunkXZ:     m.ChunkXZ,
		ChunkY:      m.ChunkY,
		Pad:         m.Pad,
		IsoLevel:    m.IsoLevel,
		YOffset:     m.YOffset,
		SnapEpsilon: m.SnapEpsilon,
		WaterLevel:  m.WaterLevel,
		Channels:    voxel.DefaultChannelTable(),
	}
	if len(m.Channels) == 0 {
		return cfg, nil
	}
	if len(m.Channels) != voxel.NumChannels {
		return cfg, fmt.Errorf("mesh.channels needs %d entries, got %d", voxel.NumChannels, len(m.Channels))
	}
	for i, name := range m.Channels {
		mat, ok := voxel.MaterialByName(name)
		if !ok {
			return cfg, fmt.Errorf("mesh.channels[%d]: unknown material %q", i, name)
		}
		cfg.Channels[i] = mat
	}
	return cfg, nil
}

// Settings converts the yaml settings into the generator's settings.
func (t TerrainConfig) Settings() terrain.Settings {
	return terrain.Settings{
		Seed:          t.Seed,
		BaseHeight:    t.BaseHeight,
		HeightScale:   t.HeightScale,
		NoiseScale:    t.NoiseScale,
		Octaves:       t.Octaves,
		CaveScale:     t.CaveScale,
		CaveThreshold: t.CaveThreshold,
	}
}
