package sim

import (
	"fmt"

	"github.com/milk9111/herbicide/controller"
	"github.com/milk9111/herbicide/ecs/component"
)

type placement struct {
	kind component.Kind
	x, y float64
}

// Sandbox is the default layout: one lane from a spawn hole on the left to
// a goal hole on the right, with trees along it.
var sandbox = []placement{
	{component.KindSpawnHole, 1, 5},
	{component.KindGoalHole, 19, 5},
	{component.KindBasicTree, 6, 3},
	{component.KindBasicTree, 10, 7},
	{component.KindSpeedTree, 14, 3},
	{component.KindStoneWall, 8, 5},
}

var sandboxDefenders = []placement{
	{component.KindSquirrel, 6, 3},
	{component.KindPorcupine, 10, 7},
	{component.KindOwl, 14, 3},
}

var sandboxWave = []component.Kind{
	component.KindKudzu,
	component.KindKudzu,
	component.KindSpurge,
	component.KindKnotwood,
	component.KindKudzu,
}

// Seed builds the sandbox layout and queues the first wave.
func (l *Level) Seed() error {
	var hole *controller.SpawnHole
	for _, p := range sandbox {
		c, err := l.factory.Spawn(p.kind, p.x, p.y)
		if err != nil {
			return fmt.Errorf("sim: seed: %w", err)
		}
		if h, ok := c.(*controller.SpawnHole); ok {
			hole = h
		}
	}
	for _, p := range sandboxDefenders {
		if _, err := l.Use(string(p.kind), p.x, p.y); err != nil {
			return fmt.Errorf("sim: seed: %w", err)
		}
	}
	if hole != nil {
		hole.Enqueue(sandboxWave...)
	}
	return nil
}

func componentKind(kind string) component.Kind {
	return component.Kind(kind)
}
