package snapshot

import (
	"context"
	"errors"
	"testing"
)

func TestPNGRejectsNonSVG(t *testing.T) {
	for _, in := range []string{"", "<html></html>", "hello"} {
		if _, err := PNG(context.Background(), in); !errors.Is(err, ErrNotSVG) {
			t.Errorf("PNG(%q) error = %v, want ErrNotSVG", in, err)
		}
	}
}
