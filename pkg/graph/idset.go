package graph

import "encoding/json"

// IDSet is an insertion-ordered set of node ids. The zero value is ready to
// use, and a nil *IDSet reads as empty.
type IDSet struct {
	ids  []string
	seen map[string]struct{}
}

// NewIDSet returns a set holding ids in the given order.
func NewIDSet(ids ...string) *IDSet {
	s := &IDSet{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s *IDSet) Add(id string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *IDSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[id]
	return ok
}

func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns a copy of the members in insertion order.
func (s *IDSet) IDs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *IDSet) MarshalJSON() ([]byte, error) {
	if s == nil || s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = IDSet{}
	for _, id := range ids {
		s.Add(id)
	}
	return nil
}
