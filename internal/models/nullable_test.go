package models

import (
	"encoding/json"
	"testing"
)

func TestNullableAbsent(t *testing.T) {
	var doc struct {
		Count Nullable[int] `json:"count"`
	}
	if err := json.Unmarshal([]byte(`{}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc.Count.Present || doc.Count.Valid {
		t.Errorf("expected absent field, got %+v", doc.Count)
	}
}

func TestNullableNull(t *testing.T) {
	var doc struct {
		Count Nullable[int] `json:"count"`
	}
	if err := json.Unmarshal([]byte(`{"count":null}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !doc.Count.Present || doc.Count.Valid {
		t.Errorf("expected present null field, got %+v", doc.Count)
	}
	if doc.Count.Ptr() != nil {
		t.Error("expected nil pointer for null field")
	}
}

func TestNullableValue(t *testing.T) {
	var doc struct {
		Count Nullable[int] `json:"count"`
	}
	if err := json.Unmarshal([]byte(`{"count":7}`), &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !doc.Count.Present || !doc.Count.Valid || doc.Count.Value != 7 {
		t.Errorf("expected value 7, got %+v", doc.Count)
	}
	if p := doc.Count.Ptr(); p == nil || *p != 7 {
		t.Errorf("expected pointer to 7, got %v", p)
	}
}

func TestNullableMarshal(t *testing.T) {
	null := Nullable[string]{Present: true}
	out, err := json.Marshal(null)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != "null" {
		t.Errorf("expected null, got %s", out)
	}

	val := Nullable[string]{Present: true, Valid: true, Value: "raclette"}
	out, err = json.Marshal(val)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"raclette"` {
		t.Errorf("expected quoted value, got %s", out)
	}
}
