package report

import "testing"

func TestValidateExportedIndexAccepts(t *testing.T) {
	index := ExportedIndex{
		SchemaVersion: SchemaVersion,
		Definitions: []ExportedDefinition{
			{VirtualPath: "lib/a.obj", IsPrivate: false, Regions: []string{"region_all"}},
		},
	}
	encoded, err := MarshalAndValidate(index)
	if err != nil {
		t.Fatalf("MarshalAndValidate: %v", err)
	}
	if encoded == "" {
		t.Fatal("expected non-empty encoding")
	}
}

func TestValidateExportedIndexRejectsMissingFields(t *testing.T) {
	err := ValidateExportedIndex(`{"schemaVersion": "1.0.0"}`)
	if err == nil {
		t.Fatal("expected validation error for missing definitions field")
	}
}

func TestValidateExportedIndexRejectsUnknownFields(t *testing.T) {
	err := ValidateExportedIndex(`{"schemaVersion": "1.0.0", "definitions": [], "extra": true}`)
	if err == nil {
		t.Fatal("expected validation error for additional properties")
	}
}

func TestValidateExportedIndexRejectsMalformedDefinition(t *testing.T) {
	err := ValidateExportedIndex(`{"schemaVersion": "1.0.0", "definitions": [{"virtualPath": ""}]}`)
	if err == nil {
		t.Fatal("expected validation error for empty virtualPath and missing fields")
	}
}
