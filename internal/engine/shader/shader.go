// Package shader provides OpenGL shader compilation and uniform management.
package shader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/logger"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(string(log), "\x00"))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, strings.TrimRight(string(log), "\x00"))
	}

	return shader, nil
}

// WithDefines inserts a #define line per entry directly after the #version
// directive of src. Defines are emitted in name order.
func WithDefines(src string, defines map[string]string) string {
	if len(defines) == 0 {
		return src
	}
	names := make([]string, 0, len(defines))
	for k := range defines {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		fmt.Fprintf(&b, "#define %s %s\n", k, defines[k])
	}

	if strings.HasPrefix(strings.TrimSpace(src), "#version") {
		trimmed := strings.TrimLeft(src, " \t\r\n")
		if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
			return trimmed[:nl+1] + b.String() + trimmed[nl+1:]
		}
		return trimmed + "\n" + b.String()
	}
	return b.String() + src
}

// Program is a linked shader program with cached uniform locations.
type Program struct {
	ID       uint32
	name     string
	uniforms map[string]int32
	log      *zap.Logger
}

// New compiles and links a named program.
func New(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	return &Program{
		ID:       id,
		name:     name,
		uniforms: make(map[string]int32),
		log:      logger.Named("shader"),
	}, nil
}

// Name returns the program name used in log messages.
func (p *Program) Name() string { return p.name }

// Use makes the program current.
func (p *Program) Use() { gl.UseProgram(p.ID) }

// Unbind clears the current program.
func (p *Program) Unbind() { gl.UseProgram(0) }

// Location returns the cached location of a uniform. Uniforms the linker
// optimized out resolve to -1, which GL ignores on upload.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	if loc < 0 {
		p.log.Debug("inactive uniform", zap.String("program", p.name), zap.String("uniform", name))
	}
	p.uniforms[name] = loc
	return loc
}

// SetInt uploads an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.Location(name), v)
}

// SetFloat uploads a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Location(name), v)
}

// SetVec2 uploads a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.Location(name), v[0], v[1])
}

// SetVec3 uploads a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Location(name), v[0], v[1], v[2])
}

// SetVec4 uploads a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.Location(name), v[0], v[1], v[2], v[3])
}

// SetMat4 uploads a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, &m[0])
}

// SetMat4Array uploads consecutive mat4 values starting at name.
func (p *Program) SetMat4Array(name string, ms []mgl32.Mat4) {
	if len(ms) == 0 {
		return
	}
	gl.UniformMatrix4fv(p.Location(name), int32(len(ms)), false, &ms[0][0])
}

// Validate runs glValidateProgram against the current GL state.
func (p *Program) Validate() error {
	gl.ValidateProgram(p.ID)
	var status int32
	gl.GetProgramiv(p.ID, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(p.ID, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(p.ID, logLen, nil, &log[0])
		return fmt.Errorf("%s program validation: %s", p.name, strings.TrimRight(string(log), "\x00"))
	}
	return nil
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
