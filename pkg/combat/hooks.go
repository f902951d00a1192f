package combat

type eventHookType string

const (
	PostAction eventHookType = "POST_ACTION"
	SessionEnd eventHookType = "SESSION_END"
)

//eventHookFunc returns true once it should be removed. r is nil for a
//SessionEnd hook fired by Forfeit.
type eventHookFunc func(s *Session, r *ActionResult) bool

type eventHook struct {
	key string
	f   eventHookFunc
}

//AddEventHook adds a hook to the session. Hook will be called based on the type of hook
func (s *Session) AddEventHook(f eventHookFunc, key string, hook eventHookType) {
	s.hooks[hook] = append(s.hooks[hook], eventHook{key: key, f: f})
	s.Log.Debugf("\t[%v] new event hook added %v", s.Label(), key)
}

func (s *Session) executeEventHooks(t eventHookType, r *ActionResult) {
	var next []eventHook
	for _, h := range s.hooks[t] {
		if !h.f(s, r) {
			next = append(next, h)
			continue
		}
		s.Log.Debugf("\t[%v] event hook %v expired", s.Label(), h.key)
	}
	s.hooks[t] = next
}
