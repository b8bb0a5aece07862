package exemplar

import (
	"fmt"
	"math"

	"github.com/0xC0000054/dbpf/endian"
	"github.com/0xC0000054/dbpf/errs"
)

// ParseBinary decodes an Exemplar/Cohort from its binary wire form.
func ParseBinary(data []byte) (*Exemplar, error) {
	if len(data) < signatureSize+12+4 {
		return nil, fmt.Errorf("exemplar: %w", errs.ErrTruncatedInput)
	}

	sig := string(data[:signatureSize])

	var isCohort bool
	switch sig {
	case binaryExemplarSignature:
		isCohort = false
	case binaryCohortSignature:
		isCohort = true
	default:
		return nil, fmt.Errorf("exemplar: unrecognized binary signature %q: %w", sig, errs.ErrMalformedRecord)
	}

	engine := endian.GetLittleEndianEngine()
	pos := signatureSize

	e := New(isCohort)
	e.ParentCohort.Type = engine.Uint32(data[pos : pos+4])
	e.ParentCohort.Group = engine.Uint32(data[pos+4 : pos+8])
	e.ParentCohort.Instance = engine.Uint32(data[pos+8 : pos+12])
	pos += 12

	count := int(int32(engine.Uint32(data[pos : pos+4])))
	pos += 4

	for i := 0; i < count; i++ {
		p, n, err := parseProperty(data[pos:], engine)
		if err != nil {
			return nil, err
		}

		e.Set(p)
		pos += n
	}

	return e, nil
}

func parseProperty(data []byte, engine endian.EndianEngine) (Property, int, error) {
	const fixedHeaderSize = 4 + 2 + 2 + 1

	if len(data) < fixedHeaderSize {
		return Property{}, 0, fmt.Errorf("exemplar: property header: %w", errs.ErrTruncatedInput)
	}

	id := engine.Uint32(data[0:4])
	dataType := DataType(engine.Uint16(data[4:6]))
	kt := keyType(engine.Uint16(data[6:8]))
	pos := fixedHeaderSize

	var repCount int
	switch kt {
	case keyTypeSingleValue:
		repCount = 1
	case keyTypeArray:
		if len(data) < pos+4 {
			return Property{}, 0, fmt.Errorf("exemplar: property rep count: %w", errs.ErrTruncatedInput)
		}
		repCount = int(int32(engine.Uint32(data[pos : pos+4])))
		pos += 4
	default:
		return Property{}, 0, fmt.Errorf("exemplar: property %d: bad key type 0x%04X: %w", id, kt, errs.ErrMalformedRecord)
	}

	p := Property{ID: id, Type: dataType}

	switch dataType {
	case DataTypeBoolean:
		vals, n, err := readBoolValues(data[pos:], repCount)
		if err != nil {
			return Property{}, 0, err
		}
		p.Values = vals
		p.RepCount = repCountOnWire(kt, repCount)
		pos += n

	case DataTypeUInt8:
		vals, n, err := readUint8Values(data[pos:], repCount)
		if err != nil {
			return Property{}, 0, err
		}
		p.Values = vals
		p.RepCount = repCountOnWire(kt, repCount)
		pos += n

	case DataTypeUInt16:
		vals, n, err := readUint16Values(data[pos:], repCount, engine)
		if err != nil {
			return Property{}, 0, err
		}
		p.Values = vals
		p.RepCount = repCountOnWire(kt, repCount)
		pos += n

	case DataTypeUInt32:
		vals, n, err := readUint32Values(data[pos:], repCount, engine)
		if err != nil {
			return Property{}, 0, err
		}
		p.Values = vals
		p.RepCount = repCountOnWire(kt, repCount)
		pos += n

	case DataTypeSInt32:
		rawVals, n, err := readUint32Values(data[pos:], repCount, engine)
		if err != nil {
			return Property{}, 0, err
		}
		vals := make([]int32, len(rawVals))
		for i, v := range rawVals {
			vals[i] = int32(v)
		}
		p.Values = vals
		p.RepCount = repCountOnWire(kt, repCount)
		pos += n

	case DataTypeSInt64:
		vals, n, err := readInt64Values(data[pos:], repCount, engine)
		if err != nil {
			return Property{}, 0, err
		}
		p.Values = vals
		p.RepCount = repCountOnWire(kt, repCount)
		pos += n

	case DataTypeFloat32:
		rawVals, n, err := readUint32Values(data[pos:], repCount, engine)
		if err != nil {
			return Property{}, 0, err
		}
		vals := make([]float32, len(rawVals))
		for i, v := range rawVals {
			vals[i] = math.Float32frombits(v)
		}
		p.Values = vals
		p.RepCount = repCountOnWire(kt, repCount)
		pos += n

	case DataTypeString:
		if len(data) < pos+repCount {
			return Property{}, 0, fmt.Errorf("exemplar: string property %d: %w", id, errs.ErrTruncatedInput)
		}
		p.Values = string(data[pos : pos+repCount])
		p.RepCount = repCount
		pos += repCount

	default:
		return Property{}, 0, fmt.Errorf("exemplar: property %d: unknown type 0x%04X: %w", id, dataType, errs.ErrMalformedRecord)
	}

	return p, pos, nil
}

// repCountOnWire reproduces the in-memory convention: RepCount is 0 for a
// single-valued non-string property, N for an array of N.
func repCountOnWire(kt keyType, repCount int) int {
	if kt == keyTypeSingleValue {
		return 0
	}

	return repCount
}

func readBoolValues(data []byte, count int) ([]bool, int, error) {
	if len(data) < count {
		return nil, 0, fmt.Errorf("exemplar: bool values: %w", errs.ErrTruncatedInput)
	}

	vals := make([]bool, count)
	for i := 0; i < count; i++ {
		vals[i] = data[i] != 0
	}

	return vals, count, nil
}

func readUint8Values(data []byte, count int) ([]uint8, int, error) {
	if len(data) < count {
		return nil, 0, fmt.Errorf("exemplar: uint8 values: %w", errs.ErrTruncatedInput)
	}

	vals := make([]uint8, count)
	copy(vals, data[:count])

	return vals, count, nil
}

func readUint16Values(data []byte, count int, engine endian.EndianEngine) ([]uint16, int, error) {
	n := count * 2
	if len(data) < n {
		return nil, 0, fmt.Errorf("exemplar: uint16 values: %w", errs.ErrTruncatedInput)
	}

	vals := make([]uint16, count)
	for i := 0; i < count; i++ {
		vals[i] = engine.Uint16(data[i*2 : i*2+2])
	}

	return vals, n, nil
}

func readUint32Values(data []byte, count int, engine endian.EndianEngine) ([]uint32, int, error) {
	n := count * 4
	if len(data) < n {
		return nil, 0, fmt.Errorf("exemplar: uint32 values: %w", errs.ErrTruncatedInput)
	}

	vals := make([]uint32, count)
	for i := 0; i < count; i++ {
		vals[i] = engine.Uint32(data[i*4 : i*4+4])
	}

	return vals, n, nil
}

func readInt64Values(data []byte, count int, engine endian.EndianEngine) ([]int64, int, error) {
	n := count * 8
	if len(data) < n {
		return nil, 0, fmt.Errorf("exemplar: int64 values: %w", errs.ErrTruncatedInput)
	}

	vals := make([]int64, count)
	for i := 0; i < count; i++ {
		vals[i] = int64(engine.Uint64(data[i*8 : i*8+8]))
	}

	return vals, n, nil
}

// Encode serializes the exemplar into its binary wire form. Properties are
// emitted in ascending ID order.
func (e *Exemplar) Encode() []byte {
	engine := endian.GetLittleEndianEngine()

	out := make([]byte, 0, signatureSize+12+4+len(e.properties)*16)

	if e.IsCohort {
		out = append(out, binaryCohortSignature...)
	} else {
		out = append(out, binaryExemplarSignature...)
	}

	var tgiBuf [12]byte
	engine.PutUint32(tgiBuf[0:4], e.ParentCohort.Type)
	engine.PutUint32(tgiBuf[4:8], e.ParentCohort.Group)
	engine.PutUint32(tgiBuf[8:12], e.ParentCohort.Instance)
	out = append(out, tgiBuf[:]...)

	var countBuf [4]byte
	engine.PutUint32(countBuf[:], uint32(len(e.properties)))
	out = append(out, countBuf[:]...)

	for _, p := range e.properties {
		out = encodeProperty(out, p, engine)
	}

	return out
}

func encodeProperty(out []byte, p Property, engine endian.EndianEngine) []byte {
	var header [9]byte
	engine.PutUint32(header[0:4], p.ID)
	engine.PutUint16(header[4:6], uint16(p.Type))

	isArray := p.IsArray()
	if isArray {
		engine.PutUint16(header[6:8], uint16(keyTypeArray))
	} else {
		engine.PutUint16(header[6:8], uint16(keyTypeSingleValue))
	}
	header[8] = 0

	out = append(out, header[:]...)

	count := p.effectiveCount()
	if isArray {
		var repBuf [4]byte
		engine.PutUint32(repBuf[:], uint32(count))
		out = append(out, repBuf[:]...)
	}

	switch p.Type {
	case DataTypeBoolean:
		for _, v := range p.Values.([]bool) {
			if v {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}

	case DataTypeUInt8:
		out = append(out, p.Values.([]uint8)...)

	case DataTypeUInt16:
		for _, v := range p.Values.([]uint16) {
			var b [2]byte
			engine.PutUint16(b[:], v)
			out = append(out, b[:]...)
		}

	case DataTypeUInt32:
		for _, v := range p.Values.([]uint32) {
			var b [4]byte
			engine.PutUint32(b[:], v)
			out = append(out, b[:]...)
		}

	case DataTypeSInt32:
		for _, v := range p.Values.([]int32) {
			var b [4]byte
			engine.PutUint32(b[:], uint32(v))
			out = append(out, b[:]...)
		}

	case DataTypeSInt64:
		for _, v := range p.Values.([]int64) {
			var b [8]byte
			engine.PutUint64(b[:], uint64(v))
			out = append(out, b[:]...)
		}

	case DataTypeFloat32:
		for _, v := range p.Values.([]float32) {
			var b [4]byte
			engine.PutUint32(b[:], math.Float32bits(v))
			out = append(out, b[:]...)
		}

	case DataTypeString:
		out = append(out, p.Values.(string)...)
	}

	return out
}
