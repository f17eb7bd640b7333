package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/graph.svg", false},
		{"absolute", "/tmp/graph.json", false},
		{"parent", "../graph.dot", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	allowed := []string{"json", "dot", "svg"}
	tests := []struct {
		name    string
		input   []string
		wantErr bool
	}{
		{"single", []string{"json"}, false},
		{"several", []string{"svg", "dot"}, false},

		{"none", nil, true},
		{"unknown", []string{"gif"}, true},
		{"case", []string{"SVG"}, true},
		{"duplicate", []string{"dot", "dot"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.input, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
