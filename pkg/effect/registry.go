package effect

import (
	"fmt"
	"sort"
	"sync"
)

var (
	mu          sync.RWMutex
	templateMap = make(map[string]*Effect)
)

//RegisterTemplate makes a named template available to roster loading. Templates
//are validated here; the engine trusts whatever it is handed afterwards.
func RegisterTemplate(t Effect) {
	mu.Lock()
	defer mu.Unlock()
	if err := t.Validate(); err != nil {
		panic("effect: RegisterTemplate " + t.Key + ": " + err.Error())
	}
	if _, dup := templateMap[t.Key]; dup {
		panic("effect: RegisterTemplate called twice for effect " + t.Key)
	}
	templateMap[t.Key] = t.Clone()
}

//Template returns a copy of the registered template
func Template(key string) (*Effect, error) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := templateMap[key]
	if !ok {
		return nil, fmt.Errorf("unknown effect %q", key)
	}
	return t.Clone(), nil
}

func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, 0, len(templateMap))
	for k := range templateMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
