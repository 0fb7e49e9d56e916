package sim

import (
	"sort"

	"github.com/milk9111/herbicide/controller"
	"github.com/milk9111/herbicide/ecs/component"
	"gopkg.in/yaml.v3"
)

// Report is a snapshot of a running level, laid out for YAML.
type Report struct {
	Frame       uint64         `yaml:"frame"`
	Phase       string         `yaml:"phase"`
	Money       int            `yaml:"money"`
	Items       map[string]int `yaml:"items,omitempty"`
	Controllers map[string]int `yaml:"controllers"`
	Pool        []PoolLine     `yaml:"pool"`
}

type PoolLine struct {
	Kind     string `yaml:"kind"`
	Acquired int    `yaml:"acquired"`
	Returned int    `yaml:"returned"`
	Active   int    `yaml:"active"`
}

func (l *Level) Report() Report {
	r := Report{
		Frame:       l.manager.Frame(),
		Phase:       l.phase.String(),
		Money:       l.ledger.Money(),
		Items:       map[string]int{},
		Controllers: map[string]int{},
	}
	for _, c := range l.manager.Controllers() {
		r.Controllers[string(c.Kind())]++
	}
	for _, kind := range controller.RegisteredKinds() {
		if cat, _ := controller.CategoryOf(kind); cat == controller.CategoryCollectable && kind != component.KindDew {
			if n := l.ledger.Items(kind); n > 0 {
				r.Items[string(kind)] = n
			}
		}
		st := l.pool.Stats(kind)
		if st.Acquired == 0 {
			continue
		}
		r.Pool = append(r.Pool, PoolLine{Kind: string(kind), Acquired: st.Acquired, Returned: st.Returned, Active: st.Active})
	}
	sort.Slice(r.Pool, func(i, j int) bool { return r.Pool[i].Kind < r.Pool[j].Kind })
	return r
}

// ReportYAML renders Report for the clipboard and the log.
func (l *Level) ReportYAML() ([]byte, error) {
	return yaml.Marshal(l.Report())
}
