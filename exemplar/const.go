package exemplar

// DataType identifies the wire type of a property's values.
type DataType uint16

const (
	DataTypeBoolean DataType = 0x0B00
	DataTypeUInt8   DataType = 0x0100
	DataTypeUInt16  DataType = 0x0200
	DataTypeUInt32  DataType = 0x0300
	DataTypeSInt32  DataType = 0x0700
	DataTypeSInt64  DataType = 0x0800
	DataTypeFloat32 DataType = 0x0900
	DataTypeString  DataType = 0x0C00
)

// String renders the type the way the text form spells it.
func (t DataType) String() string {
	switch t {
	case DataTypeBoolean:
		return "Bool"
	case DataTypeUInt8:
		return "Uint8"
	case DataTypeUInt16:
		return "Uint16"
	case DataTypeUInt32:
		return "Uint32"
	case DataTypeSInt32:
		return "Sint32"
	case DataTypeSInt64:
		return "Sint64"
	case DataTypeFloat32:
		return "Float32"
	case DataTypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// dataTypeFromName maps a text-form type name back to its DataType.
func dataTypeFromName(name string) (DataType, bool) {
	switch name {
	case "Bool":
		return DataTypeBoolean, true
	case "Uint8":
		return DataTypeUInt8, true
	case "Uint16":
		return DataTypeUInt16, true
	case "Uint32":
		return DataTypeUInt32, true
	case "Sint32":
		return DataTypeSInt32, true
	case "Sint64":
		return DataTypeSInt64, true
	case "Float32":
		return DataTypeFloat32, true
	case "String":
		return DataTypeString, true
	default:
		return 0, false
	}
}

// keyType tags a binary property record as holding a single value or an
// array.
type keyType uint16

const (
	keyTypeSingleValue keyType = 0x0000
	keyTypeArray       keyType = 0x0080
)

const (
	binaryExemplarSignature = "EQZB1###"
	binaryCohortSignature   = "CQZB1###"
	textExemplarSignature   = "EQZT1###"
	textCohortSignature     = "CQZT1###"

	signatureSize = 8
)
