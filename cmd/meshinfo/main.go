// meshinfo is a CLI utility for inspecting generated chunk meshes without
// running the streaming server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lumina3d/voxelmesh/internal/mesher"
	"github.com/lumina3d/voxelmesh/internal/server"
	"github.com/lumina3d/voxelmesh/internal/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "stats":
		cmdStats(args)
	case "export":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshinfo - chunk mesh inspection utility

Usage:
  meshinfo <command> [options]

Commands:
  stats  [-x N] [-z N] [-seed S]          Mesh one chunk and print statistics
  export [-x N] [-z N] [-seed S] -o FILE  Mesh one chunk and write a wire frame

Examples:
  meshinfo stats -x 3 -z -2
  meshinfo export -seed 42 -o chunk_0_0.vmsh`)
}

func chunkFlags(fs *flag.FlagSet) (x, z *int, seed *int64) {
	x = fs.Int("x", 0, "chunk x coordinate")
	z = fs.Int("z", 0, "chunk z coordinate")
	seed = fs.Int64("seed", 0, "terrain seed (0 keeps the default)")
	return
}

func meshChunk(x, z int, seed int64) (*mesher.ChunkMesh, mesher.Config, error) {
	cfg := mesher.DefaultConfig()
	set := terrain.DefaultSettings()
	if seed != 0 {
		set.Seed = seed
	}
	gen := terrain.New(set, cfg)
	mesh, err := mesher.Generate(gen.Grid(x, z), cfg)
	return mesh, cfg, err
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	x, z, seed := chunkFlags(fs)
	fs.Parse(args)

	mesh, cfg, err := meshChunk(*x, *z, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Chunk (%d, %d), %dx%d voxels\n", *x, *z, cfg.ChunkXZ, cfg.ChunkY)
	fmt.Printf("  Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("  Triangles:  %d\n", mesh.TriangleCount())
	fmt.Printf("  Water quad: %v\n", len(mesh.WaterIndices) > 0)
	if mesh.Collider.IsHeightfield {
		fmt.Printf("  Collider:   heightfield (%d samples)\n", len(mesh.Collider.HeightfieldSamples))
	} else {
		fmt.Printf("  Collider:   trimesh (%d triangles)\n", len(mesh.Collider.Indices)/3)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	x, z, seed := chunkFlags(fs)
	out := fs.String("o", "", "output file (required)")
	fs.Parse(args)

	if *out == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo export [-x N] [-z N] [-seed S] -o FILE")
		os.Exit(1)
	}

	mesh, _, err := meshChunk(*x, *z, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	codec, err := server.NewCodec()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	frame, err := codec.Encode(int32(*x), int32(*z), mesh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, frame, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(frame), *out)
}
