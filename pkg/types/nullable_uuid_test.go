package types

import (
	"encoding/json"
	"testing"
)

func TestNullableUUIDDistinguishesAbsentFromNull(t *testing.T) {
	type patch struct {
		CarrierID NullableUUID `json:"carrier_id"`
	}

	var got patch
	if err := json.Unmarshal([]byte(`{"carrier_id": "7b0f2c1a-9d3e-4f6a-8b21-0c5d4e3f2a10"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.CarrierID.Valid || got.CarrierID.Value == nil {
		t.Fatalf("expected present uuid, got %+v", got.CarrierID)
	}
	if got.CarrierID.Value.String() != "7b0f2c1a-9d3e-4f6a-8b21-0c5d4e3f2a10" {
		t.Fatalf("unexpected uuid %s", got.CarrierID.Value)
	}

	got = patch{}
	if err := json.Unmarshal([]byte(`{"carrier_id": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.CarrierID.Valid || got.CarrierID.Value != nil {
		t.Fatalf("explicit null should mark the field present with nil value, got %+v", got.CarrierID)
	}

	got = patch{}
	if err := json.Unmarshal([]byte(`{}`), &got); err != nil {
		t.Fatalf("unmarshal missing: %v", err)
	}
	if got.CarrierID.Valid {
		t.Fatalf("missing key must stay invalid, got %+v", got.CarrierID)
	}
}

func TestNullableUUIDCloneIsIndependent(t *testing.T) {
	var src NullableUUID
	if err := json.Unmarshal([]byte(`"7b0f2c1a-9d3e-4f6a-8b21-0c5d4e3f2a10"`), &src); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	dup := src.Clone()
	if dup.Value == src.Value {
		t.Fatal("clone must not share the pointer")
	}
	if *dup.Value != *src.Value {
		t.Fatalf("clone changed the value: %s != %s", dup.Value, src.Value)
	}
}
