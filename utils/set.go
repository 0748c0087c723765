package utils

// OrderedSet tracks distinct strings and remembers the order in which they
// were first added.
type OrderedSet struct {
	seen  map[string]struct{}
	order []string
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet() *OrderedSet {
	return &OrderedSet{seen: make(map[string]struct{})}
}

// Add returns true if s was newly added, false if already present.
func (o *OrderedSet) Add(s string) bool {
	if _, exists := o.seen[s]; exists {
		return false
	}
	o.seen[s] = struct{}{}
	o.order = append(o.order, s)
	return true
}

// Contains returns true if s has already been added.
func (o *OrderedSet) Contains(s string) bool {
	_, exists := o.seen[s]
	return exists
}

// Size returns the number of distinct values tracked.
func (o *OrderedSet) Size() int {
	return len(o.order)
}

// Values returns the distinct values in first-insertion order.
func (o *OrderedSet) Values() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}
