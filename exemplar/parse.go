package exemplar

import (
	"fmt"

	"github.com/0xC0000054/dbpf/errs"
)

// Parse decodes an Exemplar or Cohort from either its binary or text wire
// form, dispatching on the 8-byte signature. Encode always re-emits the
// binary form regardless of which form was parsed.
func Parse(data []byte) (*Exemplar, error) {
	if len(data) < signatureSize {
		return nil, fmt.Errorf("exemplar: %w", errs.ErrTruncatedInput)
	}

	switch string(data[:signatureSize]) {
	case binaryExemplarSignature, binaryCohortSignature:
		return ParseBinary(data)
	case textExemplarSignature, textCohortSignature:
		return ParseText(data)
	default:
		return nil, fmt.Errorf("exemplar: unrecognized signature %q: %w", data[:signatureSize], errs.ErrMalformedRecord)
	}
}
