package voxel

// Material identifiers. The mesher never depends on this list directly; it
// resolves materials through the ChannelTable supplied in its configuration,
// so the core stays decoupled from the game's material catalogue.
const (
	Air uint8 = iota
	Grass
	Dirt
	Stone
	Sand
	Gravel
	Snow
	Clay
	Moss
	Wood
	Leaves
	Ice
	Basalt
	Limestone
	Crystal
	Ash
	Mud

	// Water is a liquid: it occupies the material field but is excluded from
	// solid material blending and from the 16 render channels.
	Water uint8 = 200
)

// NumChannels is the number of material blend channels carried per vertex.
const NumChannels = 16

// ChannelTable maps the 16 render channels to material ids. It is plain data
// passed through configuration rather than a compile-time enum ordering.
type ChannelTable [NumChannels]uint8

// DefaultChannelTable returns the standard channel assignment.
func DefaultChannelTable() ChannelTable {
	return ChannelTable{
		Grass, Dirt, Stone, Sand,
		Gravel, Snow, Clay, Moss,
		Wood, Leaves, Ice, Basalt,
		Limestone, Crystal, Ash, Mud,
	}
}

var materialNames = map[string]uint8{
	"air":       Air,
	"grass":     Grass,
	"dirt":      Dirt,
	"stone":     Stone,
	"sand":      Sand,
	"gravel":    Gravel,
	"snow":      Snow,
	"clay":      Clay,
	"moss":      Moss,
	"wood":      Wood,
	"leaves":    Leaves,
	"ice":       Ice,
	"basalt":    Basalt,
	"limestone": Limestone,
	"crystal":   Crystal,
	"ash":       Ash,
	"mud":       Mud,
	"water":     Water,
}

// MaterialByName resolves a material name as used in configuration files.
func MaterialByName(name string) (uint8, bool) {
	m, ok := materialNames[name]
	return m, ok
}

// ChannelFor returns the channel index for a material, or -1 when the
// material has no render channel (air, liquids, unknown ids).
func (t ChannelTable) ChannelFor(mat uint8) int {
	if mat == Air || mat == Water {
		return -1
	}
	for i, m := range t {
		if m == mat {
			return i
		}
	}
	return -1
}
