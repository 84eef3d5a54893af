package framebuffer

import "testing"

// These cases return before any GL call, so no context is needed.

func TestGBufferResizeSameSizeIsNoop(t *testing.T) {
	g := &GBuffer{fbo: 7, width: 1280, height: 720}
	g.textures[GAlbedo] = 11

	changed, err := g.Resize(1280, 720)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if changed {
		t.Error("resize to the current size must not reallocate")
	}
	if g.fbo != 7 || g.textures[GAlbedo] != 11 {
		t.Error("attachments must be kept on a no-op resize")
	}
}

func TestGBufferResizeClampsBeforeCompare(t *testing.T) {
	g := &GBuffer{width: 1, height: 1}
	if changed, _ := g.Resize(0, -5); changed {
		t.Error("zero size clamps to 1x1 and matches the current size")
	}
}

func TestFramebufferResizeSameSizeIsNoop(t *testing.T) {
	fb := &Framebuffer{fbo: 3, width: 640, height: 480}
	if fb.Resize(640, 480) {
		t.Error("resize to the current size must not reallocate")
	}
	if w, h := fb.Size(); w != 640 || h != 480 {
		t.Errorf("size changed to %dx%d", w, h)
	}
}

func TestGBufferTextureCount(t *testing.T) {
	g := &GBuffer{}
	if g.TextureCount() != 5 {
		t.Errorf("expected 4 color attachments plus depth, got %d", g.TextureCount())
	}
}

func TestGBufferDestroyForgetsSize(t *testing.T) {
	g := &GBuffer{width: 1280, height: 720}
	g.Destroy()
	if w, h := g.Size(); w != 0 || h != 0 {
		t.Errorf("size after Destroy = %dx%d, want 0x0", w, h)
	}
}
