package expr

// Env is an immutable chain of variable bindings.
// The nil *Env is the empty environment.
//
// Extend never modifies its receiver, so an Env may be shared
// between goroutines and kept after inner scopes are gone.
type Env struct {
	name   string
	val    Val
	parent *Env
}

// NewEnv returns an environment holding the given bindings.
func NewEnv(bindings map[string]Val) *Env {
	var env *Env
	for name, v := range bindings {
		env = env.Extend(name, v)
	}
	return env
}

// Extend returns a new environment in which name is bound to v.
// The binding shadows any binding of name in e.
func (e *Env) Extend(name string, v Val) *Env {
	return &Env{name: name, val: v, parent: e}
}

// Lookup returns the innermost binding of name.
func (e *Env) Lookup(name string) (Val, bool) {
	for ; e != nil; e = e.parent {
		if e.name == name {
			return e.val, true
		}
	}
	return nil, false
}
