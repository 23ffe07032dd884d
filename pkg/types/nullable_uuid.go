package types

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// NullableUUID distinguishes an absent JSON key from an explicit null so
// partial updates can clear optional UUID references. Valid is false when the
// key was never present; Valid with a nil Value means "clear the column".
type NullableUUID struct {
	Valid bool
	Value *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return nil
	}

	if bytes.Equal(raw, []byte("null")) {
		n.Valid = true
		n.Value = nil
		return nil
	}

	var id uuid.UUID
	if err := json.Unmarshal(raw, &id); err != nil {
		return err
	}
	n.Valid = true
	n.Value = &id
	return nil
}

// Clone returns a deep copy so callers can mutate safely.
func (n NullableUUID) Clone() NullableUUID {
	if n.Value == nil {
		return NullableUUID{Valid: n.Valid}
	}
	v := *n.Value
	return NullableUUID{Valid: n.Valid, Value: &v}
}
