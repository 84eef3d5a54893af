package render

import (
	"testing"

	"github.com/Faultbox/lumen/internal/engine/model"
)

// meshWithIndices fakes an uploaded mesh. The VAO id is never bound.
func meshWithIndices(n int32) *model.Mesh {
	return &model.Mesh{VAO: 1, IndexCount: n}
}

func TestBuildBatchesSkipsEmptyModels(t *testing.T) {
	empty := model.NewModel("empty", nil, nil)
	empty.AddEntity(model.NewEntity("e0", "empty"))

	noMeshes := model.NewModel("bare", []*model.Material{model.NewMaterial()}, nil)
	noMeshes.AddEntity(model.NewEntity("e1", "bare"))

	batches := BuildBatches([]*model.Model{empty, noMeshes})
	if len(batches) != 0 {
		t.Fatalf("expected no batches for meshless models, got %d", len(batches))
	}
	if DrawCount(batches) != 0 {
		t.Error("expected zero draws")
	}
}

func TestBuildBatchesSkipsUninstancedModels(t *testing.T) {
	mat := model.NewMaterial()
	mat.Meshes = []*model.Mesh{meshWithIndices(3)}
	m := model.NewModel("lonely", []*model.Material{mat}, nil)

	if got := BuildBatches([]*model.Model{m}); len(got) != 0 {
		t.Errorf("expected no batches without entities, got %d", len(got))
	}
}

func TestBuildBatchesOrder(t *testing.T) {
	matA := model.NewMaterial()
	matA.Meshes = []*model.Mesh{meshWithIndices(3), meshWithIndices(0), meshWithIndices(6)}
	matB := model.NewMaterial()
	matB.Meshes = []*model.Mesh{meshWithIndices(9)}

	m := model.NewModel("house", []*model.Material{matA, matB}, nil)
	m.AddEntity(model.NewEntity("h1", "house"))
	m.AddEntity(model.NewEntity("h2", "house"))

	batches := BuildBatches([]*model.Model{m})
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	want := []struct {
		mat     *model.Material
		indices int32
	}{
		{matA, 3},
		{matA, 6},
		{matB, 9},
	}
	for i, w := range want {
		if batches[i].Material != w.mat {
			t.Errorf("batch %d: wrong material", i)
		}
		if batches[i].Mesh.IndexCount != w.indices {
			t.Errorf("batch %d: index count %d, want %d", i, batches[i].Mesh.IndexCount, w.indices)
		}
		if len(batches[i].Entities) != 2 {
			t.Errorf("batch %d: %d entities, want 2", i, len(batches[i].Entities))
		}
	}
	if DrawCount(batches) != 6 {
		t.Errorf("DrawCount = %d, want 6", DrawCount(batches))
	}
}

func TestBuildBatchesSkipsUnuploadedMeshes(t *testing.T) {
	mat := model.NewMaterial()
	mat.Meshes = []*model.Mesh{{IndexCount: 3}, nil, meshWithIndices(3)}
	m := model.NewModel("partial", []*model.Material{mat}, nil)
	m.AddEntity(model.NewEntity("p1", "partial"))

	batches := BuildBatches([]*model.Model{m})
	if len(batches) != 1 || batches[0].Mesh != mat.Meshes[2] {
		t.Fatalf("expected only the uploaded mesh, got %d batches", len(batches))
	}
}
