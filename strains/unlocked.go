package strains

// Unlocked is the player's set of bred strains, in unlock order.
// The zero value is empty and ready to use.
type Unlocked struct {
	order []string
	set   map[string]struct{}
}

// NewUnlocked returns a set holding names.
func NewUnlocked(names ...string) *Unlocked {
	u := &Unlocked{}
	for _, n := range names {
		u.Add(n)
	}
	return u
}

// Add inserts name. It returns false if name was already present.
func (u *Unlocked) Add(name string) bool {
	if u.set == nil {
		u.set = make(map[string]struct{})
	}
	if _, ok := u.set[name]; ok {
		return false
	}
	u.set[name] = struct{}{}
	u.order = append(u.order, name)
	return true
}

// Has reports whether name is in the set. Safe on a nil receiver.
func (u *Unlocked) Has(name string) bool {
	if u == nil {
		return false
	}
	_, ok := u.set[name]
	return ok
}

// Len returns the number of names.
func (u *Unlocked) Len() int {
	if u == nil {
		return 0
	}
	return len(u.order)
}

// Names returns a copy of the names in unlock order.
func (u *Unlocked) Names() []string {
	if u == nil {
		return nil
	}
	out := make([]string, len(u.order))
	copy(out, u.order)
	return out
}
