// Command simulate runs the sandbox level without a window and prints a
// YAML report of where it ended up. It is handy for tuning stats.yaml.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/milk9111/herbicide/controller"
	"github.com/milk9111/herbicide/sim"
)

func main() {
	seconds := flag.Float64("seconds", 60, "simulated seconds to run")
	tps := flag.Int("tps", 60, "ticks per simulated second")
	seed := flag.Int64("seed", 1, "random seed")
	stats := flag.String("stats", sim.DefaultStats, "stats file in prefabs/")
	money := flag.Int("money", sim.DefaultStartingMoney, "starting money")
	flag.Parse()

	if *tps <= 0 {
		log.Fatalf("-tps must be positive, got %d", *tps)
	}

	level, err := sim.NewLevel(sim.Config{Stats: *stats, Seed: *seed, StartingMoney: *money})
	if err != nil {
		log.Fatal(err)
	}
	defer level.Close()

	if err := level.Seed(); err != nil {
		log.Fatal(err)
	}

	dt := 1 / float64(*tps)
	ticks := int(*seconds * float64(*tps))
	for i := 0; i < ticks; i++ {
		level.Update(controller.PhaseOngoing, dt, sim.Pointer{})
	}

	out, err := level.ReportYAML()
	if err != nil {
		log.Fatal(err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		log.Fatal(err)
	}
}
