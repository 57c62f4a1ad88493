package protocol

import (
	"strings"
	"testing"
)

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		errorContains string
	}{
		{"valid", `{"name":"foldertint","protocol_version":"1.0.0","plugin_protocol":"go-plugin"}`, ""},
		{"not json", `foldertint 1.0`, "failed to parse plugin info"},
		{"json-stdio", `{"name":"x","protocol_version":"1.0.0","plugin_protocol":"json-stdio"}`, "unsupported plugin_protocol"},
		{"old major", `{"name":"x","protocol_version":"0.0.1","plugin_protocol":"go-plugin"}`, "incompatible major version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseInfo([]byte(tt.data))
			if tt.errorContains == "" {
				if err != nil {
					t.Fatalf("ParseInfo() error = %v", err)
				}
				if info.Name != "foldertint" {
					t.Errorf("ParseInfo() name = %q, want foldertint", info.Name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("ParseInfo() error = %v, want error containing %q", err, tt.errorContains)
			}
		})
	}
}
