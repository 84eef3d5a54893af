package importer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/anim"
)

// skinJoint is one joint as listed by a skin, before reordering.
type skinJoint struct {
	name   string
	parent int // index into the skin joint list, or anim.NoParent
	local  mgl32.Mat4
}

// buildSkeleton orders joints so every parent precedes its children and
// returns the arena plus the mapping from skin joint index to arena index.
// Joints unreachable from a root are appended as roots.
func buildSkeleton(joints []skinJoint) (*anim.Skeleton, []int, error) {
	if len(joints) > anim.MaxBones {
		return nil, nil, fmt.Errorf("skin has %d joints, max %d", len(joints), anim.MaxBones)
	}

	children := make([][]int, len(joints))
	var queue []int
	for i, j := range joints {
		if j.parent == anim.NoParent {
			queue = append(queue, i)
			continue
		}
		if j.parent < 0 || j.parent >= len(joints) {
			return nil, nil, fmt.Errorf("joint %d: parent %d out of range", i, j.parent)
		}
		children[j.parent] = append(children[j.parent], i)
	}

	order := make([]int, 0, len(joints))
	visited := make([]bool, len(joints))
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		if visited[idx] {
			continue
		}
		visited[idx] = true
		order = append(order, idx)
		queue = append(queue, children[idx]...)
	}

	remap := make([]int, len(joints))
	for i := range remap {
		remap[i] = -1
	}
	skel := &anim.Skeleton{}
	for _, old := range order {
		parent := anim.NoParent
		if p := joints[old].parent; p != anim.NoParent {
			parent = remap[p]
		}
		remap[old] = skel.Add(joints[old].name, parent, joints[old].local)
	}
	// Cycles leave joints unvisited; keep them as roots rather than failing.
	for i := range joints {
		if !visited[i] {
			remap[i] = skel.Add(joints[i].name, anim.NoParent, joints[i].local)
		}
	}
	return skel, remap, nil
}
