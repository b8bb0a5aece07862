package exemplar

import (
	"sort"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/tgi"
)

// Exemplar is a typed property bag: an optional reference to a parent
// cohort plus a set of properties keyed by a 32-bit ID. Cohorts and
// exemplars share this exact structure and differ only by their 8-byte
// signature.
//
// Properties are kept sorted ascending by ID; Properties() and Encode both
// rely on this order for bit-exact re-encoding.
type Exemplar struct {
	IsCohort     bool
	ParentCohort tgi.TGI
	properties   []Property
}

// New returns an empty Exemplar (or Cohort, if isCohort) with no parent.
func New(isCohort bool) *Exemplar {
	return &Exemplar{IsCohort: isCohort}
}

// Set inserts p, replacing any existing property with the same ID, and
// keeps the property slice sorted ascending by ID.
func (e *Exemplar) Set(p Property) {
	idx, found := e.search(p.ID)
	if found {
		e.properties[idx] = p

		return
	}

	e.properties = append(e.properties, Property{})
	copy(e.properties[idx+1:], e.properties[idx:])
	e.properties[idx] = p
}

// Get returns the property with the given ID, or false if none exists.
func (e *Exemplar) Get(id uint32) (Property, bool) {
	idx, found := e.search(id)
	if !found {
		return Property{}, false
	}

	return e.properties[idx], true
}

// Delete removes the property with the given ID, if present.
func (e *Exemplar) Delete(id uint32) {
	idx, found := e.search(id)
	if !found {
		return
	}

	e.properties = append(e.properties[:idx], e.properties[idx+1:]...)
}

// Properties returns the property collection in ascending order by ID. The
// returned slice is owned by the caller; mutating it does not affect e.
func (e *Exemplar) Properties() []Property {
	out := make([]Property, len(e.properties))
	copy(out, e.properties)

	return out
}

// search returns the index where a property with the given ID is, or
// should be inserted to keep the slice sorted.
func (e *Exemplar) search(id uint32) (int, bool) {
	idx := sort.Search(len(e.properties), func(i int) bool {
		return e.properties[i].ID >= id
	})

	if idx < len(e.properties) && e.properties[idx].ID == id {
		return idx, true
	}

	return idx, false
}

// convenience typed getters, returning errs.ErrNotFound when the property
// is absent and delegating type checks to Property's own Get* methods.

// GetUInt32 returns the values of a DataTypeUInt32 property.
func (e *Exemplar) GetUInt32(id uint32) ([]uint32, error) {
	p, ok := e.Get(id)
	if !ok {
		return nil, errs.ErrNotFound
	}

	return p.GetUInt32()
}

// GetString returns the value of a DataTypeString property.
func (e *Exemplar) GetString(id uint32) (string, error) {
	p, ok := e.Get(id)
	if !ok {
		return "", errs.ErrNotFound
	}

	return p.GetString()
}

// GetBool returns the values of a DataTypeBoolean property.
func (e *Exemplar) GetBool(id uint32) ([]bool, error) {
	p, ok := e.Get(id)
	if !ok {
		return nil, errs.ErrNotFound
	}

	return p.GetBool()
}

// GetFloat32 returns the values of a DataTypeFloat32 property.
func (e *Exemplar) GetFloat32(id uint32) ([]float32, error) {
	p, ok := e.Get(id)
	if !ok {
		return nil, errs.ErrNotFound
	}

	return p.GetFloat32()
}
