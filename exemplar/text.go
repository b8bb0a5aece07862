package exemplar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/tgi"
)

// ParseText decodes an Exemplar/Cohort from its text wire form. The text
// form is read-only: Exemplar values parsed this way can only be re-emitted
// through Encode, which always produces the binary form.
func ParseText(data []byte) (*Exemplar, error) {
	if len(data) < signatureSize+1 {
		return nil, fmt.Errorf("exemplar text: %w", errs.ErrTruncatedInput)
	}

	sig := string(data[:signatureSize])

	var isCohort bool
	switch sig {
	case textExemplarSignature:
		isCohort = false
	case textCohortSignature:
		isCohort = true
	default:
		return nil, fmt.Errorf("exemplar text: unrecognized signature %q: %w", sig, errs.ErrMalformedRecord)
	}

	if data[signatureSize] != '\n' {
		return nil, fmt.Errorf("exemplar text: missing newline after signature: %w", errs.ErrMalformedRecord)
	}

	lines := splitLines(string(data[signatureSize+1:]))
	if len(lines) < 2 {
		return nil, fmt.Errorf("exemplar text: %w", errs.ErrTruncatedInput)
	}

	e := New(isCohort)

	parentCohort, err := parseParentCohortLine(lines[0])
	if err != nil {
		return nil, err
	}
	e.ParentCohort = parentCohort

	if err := validatePropCountLine(lines[1]); err != nil {
		return nil, err
	}

	for _, line := range lines[2:] {
		if line == "" {
			continue
		}

		p, err := parsePropertyLine(line)
		if err != nil {
			return nil, err
		}

		e.Set(p)
	}

	return e, nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	return strings.Split(s, "\n")
}

func parseParentCohortLine(line string) (tgi.TGI, error) {
	const prefix = "ParentCohort=Key:{"

	if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, "}") {
		return tgi.TGI{}, fmt.Errorf("exemplar text: malformed ParentCohort line: %w", errs.ErrMalformedRecord)
	}

	body := strings.TrimSuffix(strings.TrimPrefix(line, prefix), "}")
	fields := strings.Split(body, ",")
	if len(fields) != 3 {
		return tgi.TGI{}, fmt.Errorf("exemplar text: malformed ParentCohort line: %w", errs.ErrMalformedRecord)
	}

	// Field order on the wire is group, instance, type.
	group, err := parseHexUint32(fields[0])
	if err != nil {
		return tgi.TGI{}, err
	}
	instance, err := parseHexUint32(fields[1])
	if err != nil {
		return tgi.TGI{}, err
	}
	typeID, err := parseHexUint32(fields[2])
	if err != nil {
		return tgi.TGI{}, err
	}

	return tgi.New(typeID, group, instance), nil
}

func validatePropCountLine(line string) error {
	const prefix = "PropCount="

	if !strings.HasPrefix(line, prefix) {
		return fmt.Errorf("exemplar text: malformed PropCount line: %w", errs.ErrMalformedRecord)
	}

	if _, err := parseHexUint32(strings.TrimPrefix(line, prefix)); err != nil {
		return err
	}

	return nil
}

func parsePropertyLine(line string) (Property, error) {
	head, rest, ok := strings.Cut(line, "=")
	if !ok {
		return Property{}, fmt.Errorf("exemplar text: malformed property line %q: %w", line, errs.ErrMalformedRecord)
	}

	if !strings.HasPrefix(head, "0x") {
		return Property{}, fmt.Errorf("exemplar text: malformed property id %q: %w", head, errs.ErrMalformedRecord)
	}

	idBody, _, ok := strings.Cut(head, ":{")
	if !ok {
		return Property{}, fmt.Errorf("exemplar text: malformed property id %q: %w", head, errs.ErrMalformedRecord)
	}

	id, err := parseHexUint32(strings.TrimPrefix(idBody, "0x"))
	if err != nil {
		return Property{}, err
	}

	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		return Property{}, fmt.Errorf("exemplar text: malformed property value %q: %w", rest, errs.ErrMalformedRecord)
	}

	typeName, repHex, valuesBody := parts[0], parts[1], parts[2]

	dataType, ok := dataTypeFromName(typeName)
	if !ok {
		return Property{}, fmt.Errorf("exemplar text: unknown type name %q: %w", typeName, errs.ErrMalformedRecord)
	}

	repCount, err := parseHexUint32(repHex)
	if err != nil {
		return Property{}, err
	}

	if !strings.HasPrefix(valuesBody, "{") || !strings.HasSuffix(valuesBody, "}") {
		return Property{}, fmt.Errorf("exemplar text: malformed property values %q: %w", valuesBody, errs.ErrMalformedRecord)
	}
	valuesBody = strings.TrimSuffix(strings.TrimPrefix(valuesBody, "{"), "}")

	count := int(repCount)
	if count == 0 {
		count = 1
	}

	return buildProperty(id, dataType, int(repCount), count, valuesBody)
}

func buildProperty(id uint32, dataType DataType, repCount, count int, valuesBody string) (Property, error) {
	if dataType == DataTypeString {
		s := strings.TrimSuffix(strings.TrimPrefix(valuesBody, `"`), `"`)

		return NewStringProperty(id, s), nil
	}

	tokens := strings.Split(valuesBody, ",")
	if len(tokens) != count {
		return Property{}, fmt.Errorf("exemplar text: property %d: expected %d values, found %d: %w", id, count, len(tokens), errs.ErrMalformedRecord)
	}

	switch dataType {
	case DataTypeBoolean:
		vals := make([]bool, count)
		for i, tok := range tokens {
			v, err := parseHexUint64(tok)
			if err != nil {
				return Property{}, err
			}
			vals[i] = v != 0
		}
		p := NewBoolProperty(id, vals...)
		p.RepCount = repCount

		return p, nil

	case DataTypeUInt8:
		vals := make([]uint8, count)
		for i, tok := range tokens {
			v, err := parseHexUint64(tok)
			if err != nil {
				return Property{}, err
			}
			vals[i] = uint8(v)
		}
		p := NewUInt8Property(id, vals...)
		p.RepCount = repCount

		return p, nil

	case DataTypeUInt16:
		vals := make([]uint16, count)
		for i, tok := range tokens {
			v, err := parseHexUint64(tok)
			if err != nil {
				return Property{}, err
			}
			vals[i] = uint16(v)
		}
		p := NewUInt16Property(id, vals...)
		p.RepCount = repCount

		return p, nil

	case DataTypeUInt32:
		vals := make([]uint32, count)
		for i, tok := range tokens {
			v, err := parseHexUint64(tok)
			if err != nil {
				return Property{}, err
			}
			vals[i] = uint32(v)
		}
		p := NewUInt32Property(id, vals...)
		p.RepCount = repCount

		return p, nil

	case DataTypeSInt32:
		vals := make([]int32, count)
		for i, tok := range tokens {
			v, err := parseHexUint64(tok)
			if err != nil {
				return Property{}, err
			}
			vals[i] = int32(uint32(v))
		}
		p := NewSInt32Property(id, vals...)
		p.RepCount = repCount

		return p, nil

	case DataTypeSInt64:
		vals := make([]int64, count)
		for i, tok := range tokens {
			v, err := parseHexUint64(tok)
			if err != nil {
				return Property{}, err
			}
			vals[i] = int64(v)
		}
		p := NewSInt64Property(id, vals...)
		p.RepCount = repCount

		return p, nil

	case DataTypeFloat32:
		vals := make([]float32, count)
		for i, tok := range tokens {
			f, err := strconv.ParseFloat(strings.TrimSpace(tok), 32)
			if err != nil {
				return Property{}, fmt.Errorf("exemplar text: property %d: bad float %q: %w", id, tok, errs.ErrMalformedRecord)
			}
			vals[i] = float32(f)
		}
		p := NewFloat32Property(id, vals...)
		p.RepCount = repCount

		return p, nil

	default:
		return Property{}, fmt.Errorf("exemplar text: property %d: unsupported type: %w", id, errs.ErrMalformedRecord)
	}
}

func parseHexUint32(s string) (uint32, error) {
	v, err := parseHexUint64(s)
	if err != nil {
		return 0, err
	}

	return uint32(v), nil
}

func parseHexUint64(s string) (uint64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "0x"))

	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("exemplar text: bad hex value %q: %w", s, errs.ErrMalformedRecord)
	}

	return v, nil
}
