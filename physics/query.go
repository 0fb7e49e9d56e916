package physics

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/herbicide/ecs"
)

// OverlapBox returns the entities whose shape bounds intersect the
// axis-aligned box centered on (cx, cy). Results are ordered by entity index.
func (s *Space) OverlapBox(cx, cy, w, h float64) []ecs.Entity {
	if s == nil || w <= 0 || h <= 0 {
		return nil
	}
	box := cp.BB{L: cx - w/2, B: cy - h/2, R: cx + w/2, T: cy + h/2}
	var out []ecs.Entity
	for e, b := range s.bodies {
		if b.shape.CacheBB().Intersects(box) {
			out = append(out, e)
		}
	}
	return sorted(out)
}

// OverlapCircle returns the entities whose shapes come within radius of
// (cx, cy).
func (s *Space) OverlapCircle(cx, cy, radius float64) []ecs.Entity {
	if s == nil || radius <= 0 {
		return nil
	}
	center := cp.Vector{X: cx, Y: cy}
	var out []ecs.Entity
	for e, b := range s.bodies {
		if b.shape.PointQuery(center).Distance <= radius {
			out = append(out, e)
		}
	}
	return sorted(out)
}

func sorted(out []ecs.Entity) []ecs.Entity {
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}
