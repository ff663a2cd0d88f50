package cache

import "testing"

func TestHashKey_Known(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "ztntfp"},
		{"a", "1r9wi7g"},
		{"Hallo", "184b7yf"},
		{"hallo", "1x5yz53"},
	}
	for _, tt := range tests {
		if got := HashKey(tt.in); got != tt.want {
			t.Errorf("HashKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHashKey_CaseSensitive(t *testing.T) {
	if HashKey("Hallo") == HashKey("hallo") {
		t.Fatal("expected different keys for different case")
	}
}

func TestHashKey_Stable(t *testing.T) {
	in := "Musterstraße 1, 10115 Berlin"
	if HashKey(in) != HashKey(in) {
		t.Fatal("expected identical input to hash identically")
	}
}
