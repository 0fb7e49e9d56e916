package script

import (
	"strings"

	"github.com/d5/tengo/v2"
)

// Bool converts a Go bool to a tengo object.
func Bool(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func Float(v float64) tengo.Object {
	return &tengo.Float{Value: v}
}

// ArgFloat returns args[i] as a float64, or def when absent or not numeric.
func ArgFloat(args []tengo.Object, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	switch v := args[i].(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		return def
	}
}

func ArgString(args []tengo.Object, i int) string {
	if i >= len(args) {
		return ""
	}
	if s, ok := args[i].(*tengo.String); ok {
		return strings.TrimSpace(s.Value)
	}
	return strings.TrimSpace(args[i].String())
}
