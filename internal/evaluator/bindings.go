package evaluator

// Bindings maps variable names to their numeric values. Evaluation only
// reads them; an absent name is an error, never a silent default. The
// assignment statement is the one construct allowed to write.
type Bindings map[string]float64

func NewBindings() Bindings { return make(Bindings) }

// Clone returns an independent copy. The solver binds trial values for
// the unknown into a copy so the caller's context is never mutated.
func (b Bindings) Clone() Bindings {
	c := make(Bindings, len(b)+1)
	for name, value := range b {
		c[name] = value
	}
	return c
}
