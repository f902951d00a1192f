package effect

//List is the ordered collection of active effects on one combatant. Insertion
//order is significant: percent and damage multipliers are applied in this order.
type List struct {
	effects []*Effect
}

func (l *List) All() []*Effect {
	if l == nil {
		return nil
	}
	return l.effects
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.effects)
}

//Find returns the active effect with the given key, or nil
func (l *List) Find(key string) *Effect {
	for _, e := range l.All() {
		if e.Key == key {
			return e
		}
	}
	return nil
}

func (l *List) Has(key string) bool {
	return l.Find(key) != nil
}

func (l *List) add(e *Effect) {
	l.effects = append(l.effects, e)
}

//Remove drops the effect with the given key, keeping the order of the rest
func (l *List) Remove(key string) bool {
	for i, e := range l.effects {
		if e.Key == key {
			l.effects = append(l.effects[:i], l.effects[i+1:]...)
			return true
		}
	}
	return false
}

//Keys lists active effect keys in order
func (l *List) Keys() []string {
	keys := make([]string, 0, l.Len())
	for _, e := range l.All() {
		keys = append(keys, e.Key)
	}
	return keys
}
