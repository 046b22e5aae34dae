package utils

import (
	"testing"
)

func TestParseStorageURL(t *testing.T) {
	bucket, objectPath, err := ParseStorageURL(
		"https://abc.storage.example.com/storage/v1/object/public/attachments/inspections/42/photo.png")
	if err != nil {
		t.Fatalf("ParseStorageURL returned error: %v", err)
	}
	if bucket != "attachments" {
		t.Errorf("bucket = %q, want %q", bucket, "attachments")
	}
	if objectPath != "inspections/42/photo.png" {
		t.Errorf("objectPath = %q, want %q", objectPath, "inspections/42/photo.png")
	}
}

func TestParseStorageURLRejectsOtherShapes(t *testing.T) {
	bad := []string{
		"https://example.com/some/other/path.png",
		"https://abc.storage.example.com/storage/v1/object/public/",
		"https://abc.storage.example.com/storage/v1/object/public/bucket-only",
		"://not-a-url",
	}
	for _, raw := range bad {
		if _, _, err := ParseStorageURL(raw); err == nil {
			t.Errorf("ParseStorageURL(%q) succeeded, want error", raw)
		}
	}
}
