package enums

// OpType classifies the transport mode of an operations file.
type OpType string

const (
	OpTypeMaritime OpType = "maritime"
	OpTypeAir      OpType = "air"
	OpTypeRoad     OpType = "road"
	OpTypeTrain    OpType = "train"
	OpTypeOther    OpType = "other"
)

// Valid reports whether the value is one of the known transport modes.
func (t OpType) Valid() bool {
	switch t {
	case OpTypeMaritime, OpTypeAir, OpTypeRoad, OpTypeTrain, OpTypeOther:
		return true
	default:
		return false
	}
}
