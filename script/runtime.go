// Package script runs tengo hooks that stand in for a controller's per-state
// execute logic. Transitions stay in Go; scripts only act.
package script

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/herbicide/prefabs"
)

const dispatchScript = `
if __phase == "update" {
	update(__engine, __state, __current_state)
}
`

// Engine is the set of host functions a script may call through its engine
// argument.
type Engine map[string]tengo.CallableFunc

type Runtime struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// Compile builds a runtime from source. The source must define
// update(engine, state, current).
func Compile(name string, src []byte) (*Runtime, error) {
	full := string(src) + "\n" + dispatchScript
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__current_state", "")
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	rt := &Runtime{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := rt.run("noop", "", nil); err != nil {
		return nil, err
	}
	if !compiled.IsDefined("update") {
		return nil, fmt.Errorf("script: %s does not define update", name)
	}
	return rt, nil
}

// Load compiles a script from the prefabs scripts directory.
func Load(name string) (*Runtime, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	return Compile(name, src)
}

func (rt *Runtime) Name() string {
	return rt.name
}

// Clone returns a runtime that shares the compiled program but has its own
// globals and its own state map.
func (rt *Runtime) Clone() *Runtime {
	return &Runtime{
		name:     rt.name,
		compiled: rt.compiled.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
}

// State returns the value the script stored under key in its state map.
func (rt *Runtime) State(key string) (any, bool) {
	obj, ok := rt.state.Value[key]
	if !ok {
		return nil, false
	}
	return tengo.ToInterface(obj), true
}

// Update runs the script's update hook for the current state name.
func (rt *Runtime) Update(current string, engine Engine) error {
	return rt.run("update", current, engine)
}

func (rt *Runtime) run(phase, current string, engine Engine) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("script: nil runtime")
	}
	values := make(map[string]tengo.Object, len(engine))
	for name, fn := range engine {
		values[name] = &tengo.UserFunction{Name: name, Value: fn}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", &tengo.ImmutableMap{Value: values}); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", strings.ToLower(current)); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s %s: %w", rt.name, phase, err)
	}
	return nil
}

// Cache compiles each script once and hands out clones.
type Cache struct {
	mu       sync.Mutex
	load     func(name string) (*Runtime, error)
	compiled map[string]*Runtime
}

func NewCache() *Cache {
	return &Cache{load: Load, compiled: map[string]*Runtime{}}
}

func (c *Cache) Get(name string) (*Runtime, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rt, ok := c.compiled[name]
	if !ok {
		var err error
		rt, err = c.load(name)
		if err != nil {
			return nil, err
		}
		c.compiled[name] = rt
	}
	return rt.Clone(), nil
}

// Invalidate drops a cached script so the next Get recompiles it. Runtimes
// already handed out keep the old program.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.compiled, name)
	c.mu.Unlock()
}
