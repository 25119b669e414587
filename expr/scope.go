package expr

// scope tracks the names bound by enclosing lets during a static walk.
// Each scope maps a name to whatever the pass wants to know about it.
type scope struct {
	vars   map[string]interface{}
	parent *scope
}

func newscope(parent *scope) *scope {
	return &scope{vars: make(map[string]interface{}), parent: parent}
}

func (s *scope) push() *scope {
	return newscope(s)
}

func (s *scope) define(name string, v interface{}) {
	s.vars[name] = v
}

func (s *scope) has(name string) bool {
	_, ok := s.find(name)
	return ok
}

func (s *scope) lookup(name string) interface{} {
	v, _ := s.find(name)
	return v
}

func (s *scope) find(name string) (interface{}, bool) {
	for ; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
