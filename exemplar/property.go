package exemplar

import "github.com/0xC0000054/dbpf/errs"

// Property is a single typed entry in an exemplar's property bag. Values
// holds the decoded payload as the slice type matching Type (or a string,
// for DataTypeString); RepCount is 0 for a property holding a single scalar
// and N for a property holding an array of N items, except String, which
// always stores its byte length as RepCount.
type Property struct {
	ID       uint32
	Type     DataType
	RepCount int
	Values   any
}

// IsArray reports whether Encode writes the property as an array (key type
// 0x80) rather than a single scalar value: always for strings, otherwise
// when RepCount is greater than 1. A property parsed from an array record
// holding a single value reports false.
func (p Property) IsArray() bool {
	if p.Type == DataTypeString {
		return true
	}

	return p.RepCount > 1
}

// NewBoolProperty builds a Boolean property from one or more values.
func NewBoolProperty(id uint32, values ...bool) Property {
	return Property{ID: id, Type: DataTypeBoolean, RepCount: repCountFor(len(values)), Values: values}
}

// NewUInt8Property builds a UInt8 property from one or more values.
func NewUInt8Property(id uint32, values ...uint8) Property {
	return Property{ID: id, Type: DataTypeUInt8, RepCount: repCountFor(len(values)), Values: values}
}

// NewUInt16Property builds a UInt16 property from one or more values.
func NewUInt16Property(id uint32, values ...uint16) Property {
	return Property{ID: id, Type: DataTypeUInt16, RepCount: repCountFor(len(values)), Values: values}
}

// NewUInt32Property builds a UInt32 property from one or more values.
func NewUInt32Property(id uint32, values ...uint32) Property {
	return Property{ID: id, Type: DataTypeUInt32, RepCount: repCountFor(len(values)), Values: values}
}

// NewSInt32Property builds a SInt32 property from one or more values.
func NewSInt32Property(id uint32, values ...int32) Property {
	return Property{ID: id, Type: DataTypeSInt32, RepCount: repCountFor(len(values)), Values: values}
}

// NewSInt64Property builds a SInt64 property from one or more values.
func NewSInt64Property(id uint32, values ...int64) Property {
	return Property{ID: id, Type: DataTypeSInt64, RepCount: repCountFor(len(values)), Values: values}
}

// NewFloat32Property builds a Float32 property from one or more values.
func NewFloat32Property(id uint32, values ...float32) Property {
	return Property{ID: id, Type: DataTypeFloat32, RepCount: repCountFor(len(values)), Values: values}
}

// NewStringProperty builds a String property; RepCount always equals the
// byte length of value.
func NewStringProperty(id uint32, value string) Property {
	return Property{ID: id, Type: DataTypeString, RepCount: len(value), Values: value}
}

// repCountFor returns the on-disk RepCount for a non-string property with n
// values: 0 for a single scalar, n for an array of n (n >= 1 required by
// callers; n == 0 is never constructed by the New* helpers above, but is
// tolerated by the decoder for malformed input).
func repCountFor(n int) int {
	if n == 1 {
		return 0
	}

	return n
}

// effectiveCount returns how many values a property logically holds:
// RepCount, or 1 when RepCount is the single-scalar shorthand 0.
func (p Property) effectiveCount() int {
	if p.Type == DataTypeString {
		return p.RepCount
	}
	if p.RepCount == 0 {
		return 1
	}

	return p.RepCount
}

// GetBool returns the property's values as []bool, or an error if Type is
// not DataTypeBoolean.
func (p Property) GetBool() ([]bool, error) {
	v, ok := p.Values.([]bool)
	if !ok {
		return nil, errs.ErrInvalidArgument
	}

	return v, nil
}

// GetUInt8 returns the property's values as []uint8, or an error if Type is
// not DataTypeUInt8.
func (p Property) GetUInt8() ([]uint8, error) {
	v, ok := p.Values.([]uint8)
	if !ok {
		return nil, errs.ErrInvalidArgument
	}

	return v, nil
}

// GetUInt16 returns the property's values as []uint16, or an error if Type
// is not DataTypeUInt16.
func (p Property) GetUInt16() ([]uint16, error) {
	v, ok := p.Values.([]uint16)
	if !ok {
		return nil, errs.ErrInvalidArgument
	}

	return v, nil
}

// GetUInt32 returns the property's values as []uint32, or an error if Type
// is not DataTypeUInt32.
func (p Property) GetUInt32() ([]uint32, error) {
	v, ok := p.Values.([]uint32)
	if !ok {
		return nil, errs.ErrInvalidArgument
	}

	return v, nil
}

// GetSInt32 returns the property's values as []int32, or an error if Type is
// not DataTypeSInt32.
func (p Property) GetSInt32() ([]int32, error) {
	v, ok := p.Values.([]int32)
	if !ok {
		return nil, errs.ErrInvalidArgument
	}

	return v, nil
}

// GetSInt64 returns the property's values as []int64, or an error if Type is
// not DataTypeSInt64.
func (p Property) GetSInt64() ([]int64, error) {
	v, ok := p.Values.([]int64)
	if !ok {
		return nil, errs.ErrInvalidArgument
	}

	return v, nil
}

// GetFloat32 returns the property's values as []float32, or an error if
// Type is not DataTypeFloat32.
func (p Property) GetFloat32() ([]float32, error) {
	v, ok := p.Values.([]float32)
	if !ok {
		return nil, errs.ErrInvalidArgument
	}

	return v, nil
}

// GetString returns the property's value as a string, or an error if Type
// is not DataTypeString.
func (p Property) GetString() (string, error) {
	v, ok := p.Values.(string)
	if !ok {
		return "", errs.ErrInvalidArgument
	}

	return v, nil
}
