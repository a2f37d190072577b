package viz

import "sync"

// registration tracks one surface competing for the shared render context.
type registration struct {
	id       string
	priority int
	active   bool
	seq      uint64
}

// Arbiter decides which surface may hold the single live render slot. It is a
// pure arbitration ledger: it never touches the real rendering surface, it
// only grants or denies a logical token. Construct one per application (or per
// test) and pass it to every consumer.
type Arbiter struct {
	mu       sync.Mutex
	owner    string
	registry map[string]*registration
	nextSeq  uint64

	subs    map[int]chan string
	nextSub int
}

func NewArbiter() *Arbiter {
	return &Arbiter{
		registry: make(map[string]*registration),
		subs:     make(map[int]chan string),
	}
}

// Register records the surface and decides ownership. The request is granted
// when there is no owner, when id already owns the slot, or when priority
// strictly exceeds the current owner's. Equal priority does not preempt.
// The stored priority is updated either way; a denied caller gets no queue
// slot and is expected to retry after a restoration event.
func (a *Arbiter) Register(id string, priority int) bool {
	if id == "" {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	reg, ok := a.registry[id]
	if !ok {
		reg = &registration{id: id, seq: a.nextSeq}
		a.nextSeq++
		a.registry[id] = reg
	}
	reg.priority = priority
	reg.active = true

	if a.owner == "" || a.owner == id {
		a.owner = id
		return true
	}

	cur, ok := a.registry[a.owner]
	if ok && priority <= cur.priority {
		return false
	}
	a.owner = id
	return true
}

// Unregister removes the surface from the ledger. Removing the current owner
// promotes the highest-priority remaining registration (earliest registered
// wins ties) and notifies subscribers of the promoted id. Unknown ids are a
// no-op.
func (a *Arbiter) Unregister(id string) {
	a.mu.Lock()

	if _, ok := a.registry[id]; !ok {
		a.mu.Unlock()
		return
	}
	delete(a.registry, id)

	if a.owner != id {
		a.mu.Unlock()
		return
	}
	a.owner = ""

	var next *registration
	for _, reg := range a.registry {
		if next == nil ||
			reg.priority > next.priority ||
			(reg.priority == next.priority && reg.seq < next.seq) {
			next = reg
		}
	}

	var promoted string
	if next != nil {
		a.owner = next.id
		promoted = next.id
	}

	var targets []chan string
	if promoted != "" {
		for _, ch := range a.subs {
			targets = append(targets, ch)
		}
	}
	a.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- promoted:
		default:
		}
	}
}

// IsOwner reports whether id currently holds the render slot.
func (a *Arbiter) IsOwner(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.owner != "" && a.owner == id
}

// Owner returns the current owner id, if any.
func (a *Arbiter) Owner() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.owner, a.owner != ""
}

// Subscribe returns a channel that receives the id of each promoted surface,
// plus a cancel function. Sends never block; an event is dropped if the
// subscriber's buffer is full. Every subscriber sees every promotion and
// should ignore ids that are not its own.
func (a *Arbiter) Subscribe() (<-chan string, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := make(chan string, 8)
	key := a.nextSub
	a.nextSub++
	a.subs[key] = ch

	cancel := func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, key)
	}
	return ch, cancel
}
