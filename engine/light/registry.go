package light

// MaxActiveLights is the number of lights handed to material shaders per frame.
// The registry itself is unbounded; Enumerate truncates to this many.
const MaxActiveLights = 8

// ID identifies a registered light. IDs are never reused, so a removed light's ID stays dead.
// The zero ID is never issued.
type ID uint64

type entry struct {
	id   ID
	desc Descriptor
}

type registry struct {
	entries []entry // insertion order
	nextID  ID
}

// Registry maps light IDs to descriptors, in insertion order.
//
// Any number of lights may be registered. Enumerate returns at most MaxActiveLights of them,
// the oldest first, so a light beyond the cap becomes visible once an earlier one is removed.
type Registry interface {
	// Add registers a light. The descriptor's Direction is stored normalized.
	//
	// Parameters:
	//   - d: the light descriptor
	//
	// Returns:
	//   - ID: the handle for Update, Remove and Get
	Add(d Descriptor) ID

	// Update merges the set fields of u into the light's descriptor. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the light
	//   - u: the partial update
	//
	// Returns:
	//   - bool: true if the light exists
	Update(id ID, u Update) bool

	// Remove unregisters a light. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the light
	Remove(id ID)

	// Get returns a copy of the light's descriptor.
	//
	// Parameters:
	//   - id: the light
	//
	// Returns:
	//   - Descriptor: the descriptor
	//   - bool: false if the light is unknown
	Get(id ID) (Descriptor, bool)

	// Enumerate appends up to MaxActiveLights descriptors, in insertion order, to dst.
	// Pass a reused slice to avoid per-frame allocation.
	//
	// Parameters:
	//   - dst: the slice to append to
	//
	// Returns:
	//   - []Descriptor: dst with the lights appended
	Enumerate(dst []Descriptor) []Descriptor

	// Ambient sums color * intensity over the ambient lights that Enumerate would return.
	//
	// Returns:
	//   - [3]float32: the combined ambient term
	Ambient() [3]float32

	// Len returns the number of registered lights, including those past the cap.
	//
	// Returns:
	//   - int: registered light count
	Len() int

	// Clear removes every light.
	Clear()
}

var _ Registry = &registry{}

// NewRegistry creates an empty light Registry.
//
// Returns:
//   - Registry: the newly created registry
func NewRegistry() Registry {
	return &registry{
		entries: make([]entry, 0, MaxActiveLights),
	}
}

func (r *registry) Add(d Descriptor) ID {
	d.Direction = normalize3(d.Direction[0], d.Direction[1], d.Direction[2])
	r.nextID++
	r.entries = append(r.entries, entry{id: r.nextID, desc: d})
	return r.nextID
}

func (r *registry) Update(id ID, u Update) bool {
	i := r.index(id)
	if i < 0 {
		return false
	}
	u.Apply(&r.entries[i].desc)
	return true
}

func (r *registry) Remove(id ID) {
	i := r.index(id)
	if i < 0 {
		return
	}
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
}

func (r *registry) Get(id ID) (Descriptor, bool) {
	i := r.index(id)
	if i < 0 {
		return Descriptor{}, false
	}
	return r.entries[i].desc, true
}

func (r *registry) Enumerate(dst []Descriptor) []Descriptor {
	n := min(len(r.entries), MaxActiveLights)
	for i := 0; i < n; i++ {
		dst = append(dst, r.entries[i].desc)
	}
	return dst
}

func (r *registry) Ambient() [3]float32 {
	var sum [3]float32
	n := min(len(r.entries), MaxActiveLights)
	for i := 0; i < n; i++ {
		d := &r.entries[i].desc
		if d.Kind != KindAmbient {
			continue
		}
		for c := 0; c < 3; c++ {
			sum[c] += d.Color[c] * d.Intensity
		}
	}
	return sum
}

func (r *registry) Len() int {
	return len(r.entries)
}

func (r *registry) Clear() {
	r.entries = r.entries[:0]
}

// index returns the position of id in entries, or -1.
func (r *registry) index(id ID) int {
	for i := range r.entries {
		if r.entries[i].id == id {
			return i
		}
	}
	return -1
}
