// Package tgi defines the (Type, Group, Instance) triple used to identify
// every record inside a DBPF archive.
package tgi

import "fmt"

// TGI is an immutable (type, group, instance) triple. Two TGIs are equal iff
// all three fields are equal; TGI is comparable and usable as a map key.
type TGI struct {
	Type     uint32
	Group    uint32
	Instance uint32
}

// Empty is the zero TGI (0, 0, 0).
var Empty = TGI{}

// New builds a TGI from its three components.
func New(typeID, group, instance uint32) TGI {
	return TGI{Type: typeID, Group: group, Instance: instance}
}

// IsEmpty reports whether t equals Empty.
func (t TGI) IsEmpty() bool {
	return t == Empty
}

// String renders the triple as "TGI(type, group, instance)" in hex.
func (t TGI) String() string {
	return fmt.Sprintf("TGI(0x%08X, 0x%08X, 0x%08X)", t.Type, t.Group, t.Instance)
}
