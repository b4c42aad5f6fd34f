package parallax

// queueRegistry maps a queue name to one "still queued" flag per member, in
// registration order. A slot is written only by its owning asset and read by
// the asset registered right after it. Entries are never removed.
type queueRegistry map[string][]bool

// join appends a queued slot for name and returns its index.
func (q queueRegistry) join(name string) int {
	q[name] = append(q[name], true)
	return len(q[name]) - 1
}

// release marks slot index of name as no longer queued.
func (q queueRegistry) release(name string, index int) {
	if slots, ok := q[name]; ok && index >= 0 && index < len(slots) {
		slots[index] = false
	}
}

// mayProceed reports whether the member at index can start: the first member
// always can, later ones once their predecessor has been released.
func (q queueRegistry) mayProceed(name string, index int) bool {
	if index <= 0 {
		return true
	}
	slots := q[name]
	return index-1 < len(slots) && !slots[index-1]
}
