package render

// Texture units used by the geometry pass material bindings.
const (
	unitDiffuse uint32 = iota
	unitNormal
	unitMetallic
	unitRoughness
	unitAO
	unitEmissive
)

// Texture units used by the lighting pass. The G-buffer occupies
// unitGBuffer through unitGBuffer+4.
const (
	unitGBuffer uint32 = 0
	unitShadow  uint32 = 5
)
