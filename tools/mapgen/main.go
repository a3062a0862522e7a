package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"courier-server/pkg/gridmap"
	"courier-server/pkg/utils"
)

func main() {
	var (
		width   int
		height  int
		walls   float64
		maxCost int
		dynamic int
		seed    int64
		name    string
		out     string
	)
	flag.IntVar(&width, "width", gridmap.DefaultWidth, "map width in cells")
	flag.IntVar(&height, "height", gridmap.DefaultHeight, "map height in cells")
	flag.Float64Var(&walls, "walls", gridmap.DefaultWallChance, "wall density, 0..1")
	flag.IntVar(&maxCost, "max-cost", gridmap.DefaultMaxCost, "max cell cost, 1..9")
	flag.IntVar(&dynamic, "dynamic", 0, "number of dynamic obstacles")
	flag.Int64Var(&seed, "seed", 0, "numeric seed (0 for time-based)")
	flag.StringVar(&name, "name", "", "string seed, e.g. a level name (overrides -seed)")
	flag.StringVar(&out, "o", "", "output file (default: stdout)")
	flag.Parse()

	if name != "" {
		seed = utils.StringToSeed(name)
	} else if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := gridmap.NewGenConfig(seed)
	cfg.Width = width
	cfg.Height = height
	cfg.WallChance = walls
	cfg.MaxCost = maxCost
	cfg.Dynamic = dynamic

	text := gridmap.Generate(cfg)

	// Самопроверка: сгенерированное должно парситься.
	if _, err := gridmap.Parse(strings.NewReader(text)); err != nil {
		fmt.Fprintf(os.Stderr, "generated map is invalid: %v\n", err)
		os.Exit(1)
	}

	if out == "" {
		fmt.Print(text)
		fmt.Fprintf(os.Stderr, "seed: %d\n", seed)
		return
	}

	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("Map written to %s (seed %d, %dx%d, %d dynamic obstacles)\n",
		out, seed, width, height, dynamic)
}
