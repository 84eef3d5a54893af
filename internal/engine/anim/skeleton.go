// Package anim holds skeleton hierarchies, baked animations and the
// per-entity frame sampler that turns a timeline position into bone matrices.
package anim

import "github.com/go-gl/mathgl/mgl32"

// NoParent marks a root joint.
const NoParent = -1

// Joint is one node of a skeleton. Parent and Children are indices into the
// owning Skeleton's joint list.
type Joint struct {
	Name     string
	Parent   int
	Children []int
	Local    mgl32.Mat4
}

// Skeleton is an arena of joints addressed by index.
type Skeleton struct {
	Joints []Joint
}

// Add appends a joint and links it to its parent. Passing NoParent creates a root.
func (s *Skeleton) Add(name string, parent int, local mgl32.Mat4) int {
	idx := len(s.Joints)
	s.Joints = append(s.Joints, Joint{Name: name, Parent: parent, Local: local})
	if parent != NoParent {
		s.Joints[parent].Children = append(s.Joints[parent].Children, idx)
	}
	return idx
}

// Find returns the index of the first joint with the given name, or -1.
func (s *Skeleton) Find(name string) int {
	for i := range s.Joints {
		if s.Joints[i].Name == name {
			return i
		}
	}
	return -1
}

// Roots returns the indices of joints without a parent.
func (s *Skeleton) Roots() []int {
	var roots []int
	for i := range s.Joints {
		if s.Joints[i].Parent == NoParent {
			roots = append(roots, i)
		}
	}
	return roots
}

// Walk visits every joint depth first, parents before children, passing the
// accumulated global transform. local may override a joint's bind transform;
// when nil the stored Local matrices are used.
func (s *Skeleton) Walk(local func(idx int) mgl32.Mat4, fn func(idx int, global mgl32.Mat4)) {
	var visit func(idx int, parent mgl32.Mat4)
	visit = func(idx int, parent mgl32.Mat4) {
		m := s.Joints[idx].Local
		if local != nil {
			m = local(idx)
		}
		global := parent.Mul4(m)
		fn(idx, global)
		for _, c := range s.Joints[idx].Children {
			visit(c, global)
		}
	}
	for _, r := range s.Roots() {
		visit(r, mgl32.Ident4())
	}
}

// GlobalTransforms returns the bind-pose global transform of every joint.
func (s *Skeleton) GlobalTransforms() []mgl32.Mat4 {
	out := make([]mgl32.Mat4, len(s.Joints))
	s.Walk(nil, func(idx int, global mgl32.Mat4) {
		out[idx] = global
	})
	return out
}
