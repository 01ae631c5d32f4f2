package patchop

import (
	"fmt"
	"sync"
)

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

func init() {
	Register(Add())
	Register(Insert())
	Register(Remove())
	Register(Replace())
	Register(AttributeAdd())
	Register(AttributeSet())
	Register(AttributeRemove())
	Register(SetName())
	Register(AddExtension())
	Register(Sequence())
	Register(Conditional())
	Register(FindMod())
}

func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	return res
}
