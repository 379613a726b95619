package http

import "testing"

func TestExtractPostIDFromPath(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected string
		ok       bool
	}{
		{"valid id", "/api/posts/abc-123", "abc-123", true},
		{"uuid id", "/api/posts/550e8400-e29b-41d4-a716-446655440000", "550e8400-e29b-41d4-a716-446655440000", true},
		{"collection path", "/api/posts/", "", false},
		{"no prefix", "/api/users/abc", "", false},
		{"trailing segment", "/api/posts/abc/extra", "", false},
		{"trailing slash", "/api/posts/abc/", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ExtractPostIDFromPath(tc.path)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if id != tc.expected {
				t.Errorf("expected id %q, got %q", tc.expected, id)
			}
		})
	}
}

func TestValidateUUID(t *testing.T) {
	if err := ValidateUUID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("expected valid uuid, got %v", err)
	}

	if err := ValidateUUID(""); err == nil {
		t.Error("expected error for empty uuid")
	}

	if err := ValidateUUID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed uuid")
	}
}
