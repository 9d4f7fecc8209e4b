package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "draft",
			identifier:  "abc123",
			paramsKey:   nil,
			expectedKey: "quizforge:quiz:draft:abc123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "quiz",
			objectType:  "draft",
			identifier:  "abc123",
			paramsKey:   []string{},
			expectedKey: "quizforge:quiz:draft:abc123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "quiz",
			objectType:  "draft",
			identifier:  "abc123",
			paramsKey:   []string{"10"},
			expectedKey: "quizforge:quiz:draft:abc123:10",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "draft",
			identifier:  "abc123",
			paramsKey:   []string{"10", "intermediate"},
			expectedKey: "quizforge:quiz:draft:abc123:10_intermediate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestHashContentStable(t *testing.T) {
	a := HashContent("content", "intermediate", "fast")
	b := HashContent("content", "intermediate", "fast")
	if a != b {
		t.Errorf("HashContent is not deterministic: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("HashContent length = %d, want 64", len(a))
	}
}

func TestHashContentSeparatesParts(t *testing.T) {
	// "ab" + "c" must not collide with "a" + "bc".
	if HashContent("ab", "c") == HashContent("a", "bc") {
		t.Error("HashContent does not separate its parts")
	}
	if HashContent("content", "beginner") == HashContent("content", "expert") {
		t.Error("HashContent ignores the difficulty part")
	}
}
