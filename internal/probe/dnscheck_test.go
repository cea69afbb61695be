package probe

import (
	"context"
	"testing"
)

func TestDiagnose_Offline(t *testing.T) {
	cases := []struct {
		in, class string
	}{
		{"", "INVALID_NAME"},
		{"-c 1", "INVALID_NAME"},
		{"https://example.com", "INVALID_NAME"},
		{"127.0.0.1", "IP_LITERAL"},
		{"::1", "IP_LITERAL"},
	}
	for _, c := range cases {
		if got := Diagnose(context.Background(), c.in); got.Class != c.class {
			t.Fatalf("Diagnose(%q).Class=%q want %q", c.in, got.Class, c.class)
		}
	}
}
