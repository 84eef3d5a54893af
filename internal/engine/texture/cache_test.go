package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
)

type fakeUploader struct {
	next    uint32
	uploads int
	deleted map[uint32]int
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{deleted: make(map[uint32]int)}
}

func (u *fakeUploader) Upload(img *image.RGBA) (uint32, error) {
	u.next++
	u.uploads++
	return u.next, nil
}

func (u *fakeUploader) Delete(id uint32) {
	u.deleted[id]++
}

type mapSource map[string][]byte

func (s mapSource) Load(path string) ([]byte, error) {
	data, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestGetOrCreateReturnsSameTexture(t *testing.T) {
	up := newFakeUploader()
	src := mapSource{"wood.png": encodePNG(t, 4, 2)}
	c, err := NewCache(src, up)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	a, err := c.GetOrCreate("wood.png")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	b, err := c.GetOrCreate("wood.png")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if a != b {
		t.Error("expected identical texture pointer on repeated GetOrCreate")
	}
	if up.uploads != 2 {
		t.Errorf("expected 2 uploads (default + wood), got %d", up.uploads)
	}
	if a.Width != 4 || a.Height != 2 {
		t.Errorf("expected 4x2, got %dx%d", a.Width, a.Height)
	}
	if c.Get("wood.png") != a {
		t.Error("Get should return the cached texture")
	}
}

func TestGetMissingReturnsDefault(t *testing.T) {
	c, err := NewCache(mapSource{}, newFakeUploader())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	def := c.Get(DefaultTexturePath)
	if def == nil {
		t.Fatal("expected default texture")
	}
	if got := c.Get("missing.png"); got != def {
		t.Error("Get(missing) should return the default texture")
	}
	if got := c.Get(""); got != def {
		t.Error("Get(\"\") should return the default texture")
	}
}

func TestGetOrCreateMissingFileFallsBack(t *testing.T) {
	up := newFakeUploader()
	c, err := NewCache(mapSource{}, up)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	tex, err := c.GetOrCreate("nope.png")
	if err != nil {
		t.Fatalf("expected fallback without error, got %v", err)
	}
	if tex != c.Default() {
		t.Error("expected default texture for missing file")
	}
	if c.Len() != 1 {
		t.Errorf("missing file must not add an entry, len=%d", c.Len())
	}
}

func TestGetOrCreateDecodeFailure(t *testing.T) {
	c, err := NewCache(mapSource{"bad.png": []byte("not an image")}, newFakeUploader())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	_, err = c.GetOrCreate("bad.png")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestCleanupDeletesOnce(t *testing.T) {
	up := newFakeUploader()
	src := mapSource{"a.png": encodePNG(t, 1, 1), "b.png": encodePNG(t, 2, 2)}
	c, err := NewCache(src, up)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	for _, p := range []string{"a.png", "b.png", "a.png"} {
		if _, err := c.GetOrCreate(p); err != nil {
			t.Fatalf("GetOrCreate(%s): %v", p, err)
		}
	}

	c.Cleanup()

	if len(up.deleted) != 3 {
		t.Errorf("expected 3 deleted textures, got %d", len(up.deleted))
	}
	for id, n := range up.deleted {
		if n != 1 {
			t.Errorf("texture %d deleted %d times", id, n)
		}
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Cleanup, got %d", c.Len())
	}
}

func TestPathsInCreationOrder(t *testing.T) {
	src := mapSource{"a.png": encodePNG(t, 1, 1), "b.png": encodePNG(t, 1, 1)}
	c, err := NewCache(src, newFakeUploader())
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c.GetOrCreate("b.png")
	c.GetOrCreate("a.png")

	paths := c.Paths()
	want := []string{DefaultTexturePath, "b.png", "a.png"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %s, want %s", i, paths[i], want[i])
		}
	}
}
