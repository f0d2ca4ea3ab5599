package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJsonManifest_ReadCurrent(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantStr  string
		wantErr  bool
	}{
		{"valid version", `{"name":"test","version":"1.0.0"}`, "1.0.0", false},
		{"invalid version", `{"name":"test","version":"bogus"}`, "", true},
		{"missing version", `{"name":"test"}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(tt.contents), 0o644); err != nil {
				t.Fatalf("write manifest: %v", err)
			}

			rw, _, err := Detect(dir)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			v, _, err := rw.ReadCurrent(dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCurrent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if v.String() != tt.wantStr {
				t.Errorf("ReadCurrent() version = %q, want %q", v.String(), tt.wantStr)
			}
		})
	}
}

func TestJsonManifest_WriteVersion_PreservesFormatting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	original := "{\n  \"name\": \"test\",\n  \"version\": \"1.0.0\",\n  \"scripts\": {\n    \"build\": \"tsc\"\n  }\n}\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	rw, _, err := Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	v, _, err := rw.ReadCurrent(dir)
	if err != nil {
		t.Fatalf("ReadCurrent: %v", err)
	}
	v.Major++
	v.Minor, v.Patch = 0, 0

	if err := rw.WriteVersion(path, v); err != nil {
		t.Fatalf("WriteVersion: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got := string(updated)

	if !strings.Contains(got, `"version": "2.0.0"`) {
		t.Errorf("WriteVersion() did not update the version field:\n%s", got)
	}
	if !strings.Contains(got, "\"scripts\": {\n    \"build\": \"tsc\"\n  }") {
		t.Errorf("WriteVersion() disturbed unrelated content:\n%s", got)
	}
}
