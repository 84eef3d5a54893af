package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"

	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/logger"
)

// DefaultTexturePath is the cache key of the built-in 1x1 white texture.
const DefaultTexturePath = "resources/models/default/default_texture.png"

// Source loads raw file contents for a texture path.
type Source interface {
	Load(path string) ([]byte, error)
}

// Cache owns one GPU texture per distinct path. It is only mutated during
// scene load and unload.
type Cache struct {
	source   Source
	uploader Uploader
	textures map[string]*Texture
	order    []string
	log      *zap.Logger
}

// NewCache creates a cache and uploads the default texture.
func NewCache(source Source, uploader Uploader) (*Cache, error) {
	c := &Cache{
		source:   source,
		uploader: uploader,
		textures: make(map[string]*Texture),
		log:      logger.Named("texture"),
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if _, err := c.CreateFromImage(DefaultTexturePath, white); err != nil {
		return nil, fmt.Errorf("creating default texture: %w", err)
	}
	return c, nil
}

// GetOrCreate returns the texture for path, loading and uploading it on the
// first request. A file that does not exist resolves to the default texture.
// Undecodable data is an error.
func (c *Cache) GetOrCreate(path string) (*Texture, error) {
	if path == "" {
		return c.Default(), nil
	}
	if t, ok := c.textures[path]; ok {
		return t, nil
	}

	data, err := c.source.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("texture not found, using default", zap.String("path", path))
			return c.Default(), nil
		}
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}

	img, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	return c.CreateFromImage(path, img)
}

// CreateFromImage uploads an already decoded image under path. Rows are
// flipped so that image row 0 maps to texture coordinate v=1. An existing
// entry for path is returned unchanged.
func (c *Cache) CreateFromImage(path string, img *image.RGBA) (*Texture, error) {
	if t, ok := c.textures[path]; ok {
		return t, nil
	}

	flipped := FlipVertical(img)
	id, err := c.uploader.Upload(flipped)
	if err != nil {
		return nil, fmt.Errorf("uploading texture %s: %w", path, err)
	}

	t := &Texture{
		ID:     id,
		Path:   path,
		Width:  flipped.Bounds().Dx(),
		Height: flipped.Bounds().Dy(),
	}
	c.textures[path] = t
	c.order = append(c.order, path)
	c.log.Debug("texture created", zap.String("path", path), zap.Int("width", t.Width), zap.Int("height", t.Height))
	return t, nil
}

// Get returns the texture for path or the default texture when path is
// empty or was never loaded. It never fails.
func (c *Cache) Get(path string) *Texture {
	if path != "" {
		if t, ok := c.textures[path]; ok {
			return t
		}
	}
	return c.Default()
}

// Default returns the built-in default texture.
func (c *Cache) Default() *Texture {
	return c.textures[DefaultTexturePath]
}

// Len returns the number of textures held, including the default.
func (c *Cache) Len() int {
	return len(c.textures)
}

// Paths returns the loaded texture paths in creation order.
func (c *Cache) Paths() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Cleanup releases every GPU texture exactly once and empties the cache.
func (c *Cache) Cleanup() {
	for _, path := range c.order {
		if t, ok := c.textures[path]; ok {
			c.uploader.Delete(t.ID)
		}
	}
	c.textures = make(map[string]*Texture)
	c.order = nil
}
