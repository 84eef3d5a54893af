package shader

import (
	"strings"
	"testing"
)

func TestWithDefines(t *testing.T) {
	src := "#version 410 core\nvoid main() {}\n"
	got := WithDefines(src, map[string]string{"MAX_BONES": "150", "CASCADES": "3"})

	want := "#version 410 core\n#define CASCADES 3\n#define MAX_BONES 150\nvoid main() {}\n"
	if got != want {
		t.Errorf("WithDefines =\n%q\nwant\n%q", got, want)
	}
}

func TestWithDefinesNoVersion(t *testing.T) {
	got := WithDefines("void main() {}", map[string]string{"A": "1"})
	if !strings.HasPrefix(got, "#define A 1\n") {
		t.Errorf("expected define at the top, got %q", got)
	}
}

func TestWithDefinesEmpty(t *testing.T) {
	src := "#version 410 core\n"
	if got := WithDefines(src, nil); got != src {
		t.Errorf("expected source unchanged, got %q", got)
	}
}
