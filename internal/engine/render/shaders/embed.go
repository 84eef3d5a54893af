// Package shaders contains embedded GLSL sources for the render passes.
package shaders

import _ "embed"

// SceneVertexShader transforms (and skins) geometry for the G-buffer pass.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader writes surface attributes into the G-buffer targets.
//
//go:embed scene.frag
var SceneFragmentShader string

// ShadowVertexShader transforms geometry into one cascade's light space.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader is the empty depth-only fragment stage.
//
//go:embed shadow.frag
var ShadowFragmentShader string

// LightsVertexShader emits the full-screen quad for the lighting pass.
//
//go:embed lights.vert
var LightsVertexShader string

// LightsFragmentShader resolves lit color from the G-buffer and shadow cascades.
//
//go:embed lights.frag
var LightsFragmentShader string

// SkyBoxVertexShader positions the environment cube around the camera.
//
//go:embed skybox.vert
var SkyBoxVertexShader string

// SkyBoxFragmentShader samples the environment cube map.
//
//go:embed skybox.frag
var SkyBoxFragmentShader string

// FXAAVertexShader emits the full-screen quad for anti-aliasing.
//
//go:embed fxaa.vert
var FXAAVertexShader string

// FXAAFragmentShader applies fast approximate anti-aliasing.
//
//go:embed fxaa.frag
var FXAAFragmentShader string
