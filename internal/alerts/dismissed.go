package alerts

// DismissedSet tracks notification ids the user has dismissed during
// the current session. Because ids are deterministic, a dismissed
// notification stays hidden across refreshes until the set is reset or
// the session ends. Not safe for concurrent use; callers serialize
// access.
type DismissedSet struct {
	ids map[string]struct{}
}

func NewDismissedSet() *DismissedSet {
	return &DismissedSet{ids: make(map[string]struct{})}
}

// Dismiss marks a notification id as hidden. Dismissing an id that no
// current notification carries is allowed and harmless.
func (s *DismissedSet) Dismiss(id string) {
	s.ids[id] = struct{}{}
}

func (s *DismissedSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *DismissedSet) Len() int {
	return len(s.ids)
}

// Reset forgets every dismissal, restoring all notifications.
func (s *DismissedSet) Reset() {
	s.ids = make(map[string]struct{})
}

// Filter returns the notifications not dismissed, preserving order.
func (s *DismissedSet) Filter(ns []Notification) []Notification {
	out := make([]Notification, 0, len(ns))
	for _, n := range ns {
		if !s.Contains(n.ID) {
			out = append(out, n)
		}
	}
	return out
}
