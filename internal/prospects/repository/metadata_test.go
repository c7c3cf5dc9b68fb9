package repository

import "testing"

func TestMetadataTruthy(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{"true", true},
		{"1", true},
		{"false", false},
		{"yes", false},
		{1, false},
		{nil, false},
	}

	for _, tc := range cases {
		got := MetadataTruthy(map[string]any{"flag": tc.value}, "flag")
		if got != tc.want {
			t.Fatalf("value %v: expected %v, got %v", tc.value, tc.want, got)
		}
	}

	if MetadataTruthy(nil, "flag") {
		t.Fatal("nil bag should never be truthy")
	}
	if MetadataTruthy(map[string]any{}, "flag") {
		t.Fatal("absent key should never be truthy")
	}
}

func TestMetadataString(t *testing.T) {
	bag := map[string]any{"link": "https://meet.exemple.fr/abc", "count": 3}

	if got := MetadataString(bag, "link"); got != "https://meet.exemple.fr/abc" {
		t.Fatalf("unexpected value: %q", got)
	}
	if got := MetadataString(bag, "count"); got != "" {
		t.Fatalf("non-string value should read as empty, got %q", got)
	}
	if got := MetadataString(nil, "link"); got != "" {
		t.Fatalf("nil bag should read as empty, got %q", got)
	}
}
