package rules

import "github.com/distsys-tools/vclockmerge/engine"

// BuiltinRegistry returns an engine.Registry for the argument-free,
// monomorphic-by-Go-type rules in the catalog — the ones a bare
// `merge:"rule=ID"` struct tag can name without a type parameter or a
// constructor argument. Rules that need an element type (SetUnion,
// AppendList, DictionaryMerge, ...) or an argument (BlendDouble,
// NodeAlwaysWins, TrustWeighted, ...) must be bound programmatically via
// engine.SetRule or a Resolver instead.
func BuiltinRegistry() engine.Registry {
	return engine.Registry{
		"OrBoolean":      func() engine.ErasedRule { return engine.Erase[bool](OrBoolean{}) },
		"AndBoolean":     func() engine.ErasedRule { return engine.Erase[bool](AndBoolean{}) },
		"SumInt":         func() engine.ErasedRule { return engine.Erase[int](SumInt{}) },
		"MaxInt":         func() engine.ErasedRule { return engine.Erase[int](MaxInt{}) },
		"MinInt":         func() engine.ErasedRule { return engine.Erase[int](MinInt{}) },
		"MaxDouble":      func() engine.ErasedRule { return engine.Erase[float64](MaxDouble{}) },
		"MinDouble":      func() engine.ErasedRule { return engine.Erase[float64](MinDouble{}) },
		"AverageDouble":  func() engine.ErasedRule { return engine.Erase[float64](AverageDouble{}) },
		"LongestString":  func() engine.ErasedRule { return engine.Erase[string](LongestString{}) },
		"ShortestString": func() engine.ErasedRule { return engine.Erase[string](ShortestString{}) },
	}
}
