package core

import (
	"errors"
	"reflect"
	"testing"

	"prism/pkg/domain"
)

func TestEncodeSnapshotUsesRecordFieldNames(t *testing.T) {
	payload, err := EncodeSnapshot([]Startup{{
		ID: "1",
		StartupFields: domain.StartupFields{
			Name: "Acme", Description: "d", Industry: "Fintech",
			FundingStage: domain.StageSeriesA, FundingAmount: 2500000,
			FoundedDate: "2021-07-01", TeamSize: 40, Status: domain.StatusAcquired,
		},
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":"1","name":"Acme","description":"d","industry":"Fintech","fundingStage":"Series A","fundingAmount":2500000,"foundedDate":"2021-07-01","teamSize":40,"status":"Acquired"}]`
	if string(payload) != want {
		t.Fatalf("unexpected payload\n got %s\nwant %s", payload, want)
	}
	decoded, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded[0].FundingStage != domain.StageSeriesA || decoded[0].TeamSize != 40 {
		t.Fatalf("unexpected decoded record %+v", decoded[0])
	}
}

func TestEncodeSnapshotEmpty(t *testing.T) {
	payload, err := EncodeSnapshot(nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("expected [], got %s", payload)
	}
	decoded, err := DecodeSnapshot(payload)
	if err != nil || len(decoded) != 0 {
		t.Fatalf("expected empty decode, got %v %v", decoded, err)
	}
}

func TestDecodeSnapshotPreservesOrder(t *testing.T) {
	decoded, err := DecodeSnapshot([]byte(` [{"id":"b","name":"B"},{"id":"a","name":"A"}] `))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(ids(decoded), []string{"b", "a"}) {
		t.Fatalf("unexpected order %v", ids(decoded))
	}
}

func TestDecodeSnapshotRejectsMalformed(t *testing.T) {
	for _, payload := range []string{"", "null", `"x"`, `{}`, `[null]`, `[[]]`, `[{"name":"no id"}]`, `[{"id":"a"},{"id":"a"}]`} {
		if _, err := DecodeSnapshot([]byte(payload)); !errors.Is(err, ErrCorruptSnapshot) {
			t.Fatalf("payload %q: expected ErrCorruptSnapshot, got %v", payload, err)
		}
	}
}

func TestDecodeSnapshotIgnoresExtraKeys(t *testing.T) {
	decoded, err := DecodeSnapshot([]byte(`[{"id":"a","name":"Acme","logoUrl":"x.png"},{"id":"b","name":"Beta"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(ids(decoded), []string{"a", "b"}) || decoded[0].Name != "Acme" {
		t.Fatalf("unexpected records %+v", decoded)
	}
}
