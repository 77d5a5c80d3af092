package util

import "testing"

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain ascii",
			input:    "SomeTag",
			expected: "SomeTag",
		},
		{
			name:     "space becomes %20",
			input:    "my page",
			expected: "my%20page",
		},
		{
			name:     "unreserved marks kept",
			input:    "a-b_c.d!e~f*g'h(i)",
			expected: "a-b_c.d!e~f*g'h(i)",
		},
		{
			name:     "reserved characters escaped",
			input:    "a/b?c=d&e+f#g",
			expected: "a%2Fb%3Fc%3Dd%26e%2Bf%23g",
		},
		{
			name:     "multibyte",
			input:    "作品",
			expected: "%E4%BD%9C%E5%93%81",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := EncodeURIComponent(tt.input)
			if actual != tt.expected {
				t.Errorf("EncodeURIComponent(%q) = %q, want %q", tt.input, actual, tt.expected)
			}
		})
	}
}
