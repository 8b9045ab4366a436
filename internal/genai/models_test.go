package genai

import "testing"

func TestFormatModelName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"claude-3-5-sonnet", "Claude 3.5 Sonnet"},
		{"claude-4-5-sonnet", "Claude 4.5 Sonnet"},
		{"claude-3-opus", "Claude 3 Opus"},
		{"llama3-1-405b", "Llama 3.1 405B"},
		{"llama4-maverick-17b", "Llama 4 Maverick 17B"},
		{"gpt-4", "Gpt 4"},
		{"mistral-large", "Mistral Large"},
	}
	for _, tt := range tests {
		if got := FormatModelName(tt.id); got != tt.want {
			t.Errorf("FormatModelName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIsSupportedModel(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"claude-3-5-sonnet", true},
		{"llama3-1-405b", true},
		{"llama4-maverick-17b", true},
		{"gpt-4", false},
		{"mistral-large", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSupportedModel(tt.id); got != tt.want {
			t.Errorf("IsSupportedModel(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
