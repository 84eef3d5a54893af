// Package importer loads glTF 2.0 models into engine models: meshes grouped
// by material, texture references resolved through the texture cache and,
// for skinned models, a skeleton with baked animations.
package importer

import (
	"fmt"
	"image"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/engine/model"
	"github.com/Faultbox/lumen/internal/engine/texture"
	"github.com/Faultbox/lumen/internal/logger"
)

// Resolver maps a model path to a file on disk.
type Resolver interface {
	Resolve(path string) (string, error)
}

// TextureStore receives the textures referenced by imported materials.
type TextureStore interface {
	GetOrCreate(path string) (*texture.Texture, error)
	CreateFromImage(path string, img *image.RGBA) (*texture.Texture, error)
}

// Loader imports models.
type Loader struct {
	resolver   Resolver
	textures   TextureStore
	SampleRate float64
	upload     func(*model.MeshData) (*model.Mesh, error)
	destroy    func(*model.Mesh)
	log        *zap.Logger
}

// NewLoader creates a loader resolving files through r and registering
// textures in store. sampleRate is the baked animation frame rate.
func NewLoader(r Resolver, store TextureStore, sampleRate float64) *Loader {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Loader{
		resolver:   r,
		textures:   store,
		SampleRate: sampleRate,
		upload:     model.NewMesh,
		destroy:    (*model.Mesh).Destroy,
		log:        logger.Named("importer"),
	}
}

// LoadModel reads path and uploads its meshes. When animated is false skins
// and animations in the file are ignored and all geometry is static. The file
// must exist and parse; failures are returned, never partially applied.
func (l *Loader) LoadModel(id, path string, animated bool) (*model.Model, error) {
	file, err := l.resolver.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", id, err)
	}

	doc, err := gltf.Open(file)
	if err != nil {
		return nil, fmt.Errorf("parsing model %s: %w", path, err)
	}

	imp := newDocImport(doc, file, l)
	m, err := imp.run(id, animated)
	if err != nil {
		imp.release()
		return nil, fmt.Errorf("importing model %s: %w", path, err)
	}
	m.Path = path

	l.log.Info("model loaded",
		zap.String("id", id),
		zap.String("path", path),
		zap.Int("materials", len(m.Materials)),
		zap.Int("meshes", m.MeshCount()),
		zap.Int("animations", len(m.Animations)))
	return m, nil
}
