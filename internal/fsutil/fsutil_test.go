package fsutil

import (
	"testing"
)

func TestQualify(t *testing.T) {
	tests := []struct {
		name      string
		defaultFS string
		path      string
		expected  string
		wantErr   bool
	}{
		{"no default fs", "", "/warehouse/t1", "/warehouse/t1", false},
		{"absolute path", "hdfs://nn:8020", "/warehouse/t1", "hdfs://nn:8020/warehouse/t1", false},
		{"relative path", "hdfs://nn:8020", "warehouse/t1", "hdfs://nn:8020/warehouse/t1", false},
		{"already qualified", "hdfs://nn:8020", "s3a://bucket/t1", "s3a://bucket/t1", false},
		{"scheme only default", "hdfs://", "/warehouse/t1", "", true},
		{"missing scheme", "nn:8020", "/warehouse/t1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &Qualifier{DefaultFS: tt.defaultFS}
			got, err := q.Qualify(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Qualify(%q) expected error, got %q", tt.path, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Qualify(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.expected {
				t.Errorf("Qualify(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestHasScheme(t *testing.T) {
	if !hasScheme("hdfs://nn/warehouse") {
		t.Error("expected hdfs URI to be recognized as qualified")
	}
	if hasScheme("/warehouse/t1") {
		t.Error("plain path must not be treated as qualified")
	}
	if hasScheme("/dir/odd://name") {
		t.Error("separator inside a path segment is not a scheme")
	}
}
