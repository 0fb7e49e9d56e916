package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/herbicide/sim"
	"github.com/pkg/profile"
)

func main() {
	width := flag.Int("width", baseWidth, "window width in pixels")
	height := flag.Int("height", baseHeight, "window height in pixels")
	seed := flag.Int64("seed", 1, "random seed for target election and pickups")
	paused := flag.Bool("paused", false, "start paused")
	stats := flag.String("stats", sim.DefaultStats, "stats file in prefabs/")
	watch := flag.Bool("watch", false, "reload prefabs/ and prefabs/scripts/ when they change")
	debug := flag.Bool("debug", false, "draw ranges and target lines")
	prof := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	flag.Parse()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown -profile %q, want cpu or mem", *prof)
	}

	level, err := sim.NewLevel(sim.Config{
		Stats:         *stats,
		Seed:          *seed,
		StartingMoney: sim.DefaultStartingMoney,
		ThrowX:        float64(baseWidth) / tileSize / 2,
		ThrowY:        float64(baseHeight)/tileSize - 1,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer level.Close()

	if err := level.Seed(); err != nil {
		log.Fatal(err)
	}
	if *watch {
		if err := level.WatchPrefabs("prefabs", "prefabs/scripts"); err != nil {
			log.Printf("hot reload disabled: %v", err)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("herbicide")

	if err := ebiten.RunGame(NewGame(level, *paused, *debug)); err != nil && err != ebiten.Termination {
		log.Print(err)
	}
}
