//go:build !tinygo && cgo

package latheaux

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/lathe"
)

const vertexShader = `#version 460
in vec3 a_position;
in vec3 a_color;
uniform mat4 u_mvp;
uniform mat4 u_mv;
out vec3 v_color;
out vec3 v_model;
out vec3 v_eye;
void main() {
	v_color = a_color;
	v_model = a_position;
	v_eye = (u_mv * vec4(a_position, 1.0)).xyz;
	gl_Position = u_mvp * vec4(a_position, 1.0);
}
` + "\x00"

const fragmentShader = `#version 460
in vec3 v_color;
in vec3 v_model;
in vec3 v_eye;
uniform mat3 u_n;
uniform vec3 u_lpos;
uniform vec3 u_lcolor;
uniform int u_lie;
out vec4 fragColor;
void main() {
	if (u_lie == 0) {
		fragColor = vec4(v_color, 1.0);
		return;
	}
	// Flat face normal from screen space derivatives of the model position.
	vec3 n = normalize(u_n * cross(dFdx(v_model), dFdy(v_model)));
	vec3 l = normalize(u_lpos - v_eye);
	float dif = abs(dot(n, l));
	vec3 col = v_color * (0.35 + 0.65 * dif) * u_lcolor;
	fragColor = vec4(col, 1.0);
}
` + "\x00"

func ui(m *lathe.Model, cfg UIConfig) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	logln := func(args ...any) {
		if !cfg.Silent {
			log.Println(args...)
		}
	}
	window, term, err := startGLFW(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer term()
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexShader,
		Fragment: fragmentShader,
	})
	if err != nil {
		return err
	}
	defer prog.Delete()
	prog.Bind()

	var vao, vbo, ebo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)

	posAttrib, err := prog.AttribLocation("a_position\x00")
	if err != nil {
		return err
	}
	colorAttrib, err := prog.AttribLocation("a_color\x00")
	if err != nil {
		return err
	}
	const stride = lathe.VertexSize * 4
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointerWithOffset(posAttrib, lathe.VerCoordCount, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(colorAttrib)
	gl.VertexAttribPointerWithOffset(colorAttrib, lathe.ColorCount, gl.FLOAT, false, stride, lathe.VerCoordCount*4)

	var uniforms [6]int32
	for i, name := range []string{"u_mvp\x00", "u_mv\x00", "u_n\x00", "u_lpos\x00", "u_lcolor\x00", "u_lie\x00"} {
		uniforms[i], err = prog.UniformLocation(name)
		if err != nil {
			return err
		}
	}
	mvpUniform, mvUniform, nUniform, lposUniform, lcolorUniform, lieUniform := uniforms[0], uniforms[1], uniforms[2], uniforms[3], uniforms[4], uniforms[5]
	gl.Enable(gl.DEPTH_TEST)

	ctl := NewController(m, cfg.Step)
	var (
		refresh  = true
		upload   = true
		numIndex int32
	)
	act := func(err error) {
		refresh = true
		if err != nil {
			logln(err)
			return
		}
		upload = true
	}
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		if key >= glfw.Key1 && key <= glfw.Key9 {
			if err := ctl.SetSpeed(int(key - glfw.Key1)); err != nil {
				logln(err)
			}
			return
		}
		var dx, dy, dz int
		switch key {
		case glfw.KeyKP4:
			dx = -1
		case glfw.KeyKP6:
			dx = 1
		case glfw.KeyKP2:
			dy = -1
		case glfw.KeyKP8:
			dy = 1
		case glfw.KeyKP7:
			dz = -1
		case glfw.KeyKP9:
			dz = 1
		}
		if dx != 0 || dy != 0 || dz != 0 {
			refresh = ctl.MoveLight(dx, dy, dz) || refresh
			return
		}
		a, ok := keyActions[key]
		if !ok {
			return
		}
		act(ctl.Do(a))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		x, y := w.GetCursorPos()
		width, height := w.GetSize()
		act(ctl.Click(x, y, width, height))
	})

	ctx := cfg.Context
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		if upload {
			b := m.Buffers()
			numIndex = int32(len(b.Indices))
			// gl.Ptr panics on empty slices.
			if len(b.Vertices) > 0 && numIndex > 0 {
				gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
				gl.BufferData(gl.ARRAY_BUFFER, 4*len(b.Vertices), gl.Ptr(b.Vertices), gl.DYNAMIC_DRAW)
				gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
				gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(b.Indices), gl.Ptr(b.Indices), gl.DYNAMIC_DRAW)
			}
			upload = false
		}
		width, height := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.0, 0.0, 0.0, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		prog.Bind()
		model := m.ModelMatrix()
		mvpm := cfg.Camera.MVP(model)
		mv := cfg.Camera.View.Mul(model)
		gl.UniformMatrix4fv(mvpUniform, 1, false, mvpm.Ptr())
		gl.UniformMatrix4fv(mvUniform, 1, false, mv.Ptr())
		lit := ctl.Light.Enabled
		if lit {
			n, err := cfg.Camera.NormalMatrix(model)
			if err != nil {
				lit = false
			} else {
				gl.UniformMatrix3fv(nUniform, 1, true, &n[0])
			}
		}
		lpos := ctl.Light.Position
		gl.Uniform3f(lposUniform, lpos.X, lpos.Y, lpos.Z)
		gl.Uniform3f(lcolorUniform, ctl.Light.Color[0], ctl.Light.Color[1], ctl.Light.Color[2])
		if lit {
			gl.Uniform1i(lieUniform, 1)
		} else {
			gl.Uniform1i(lieUniform, 0)
		}
		if numIndex > 0 {
			gl.BindVertexArray(vao)
			gl.DrawElementsWithOffset(gl.TRIANGLES, numIndex, gl.UNSIGNED_INT, 0)
		}
		window.SwapBuffers()
		refresh = false
		for !refresh && !window.ShouldClose() {
			time.Sleep(time.Second / 60)
			glfw.PollEvents()
			if ctx != nil && ctx.Err() != nil {
				break
			}
		}
	}
	return nil
}

var keyActions = map[glfw.Key]Action{
	glfw.KeyE:     ActionAdvance,
	glfw.KeyQ:     ActionRetreat,
	glfw.KeySpace: ActionClear,
	glfw.KeyUp:    ActionRotateUp,
	glfw.KeyDown:  ActionRotateDown,
	glfw.KeyLeft:  ActionRotateLeft,
	glfw.KeyRight: ActionRotateRight,
	glfw.KeyW:     ActionRollLeft,
	glfw.KeyS:     ActionRollRight,
	glfw.KeyA:     ActionRotateAxis,
}

func startGLFW(width, height int) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err = glfw.CreateWindow(width, height, "lathe: E advance, Q back, Space clear", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, errors.Join(errors.New("failed to initialize OpenGL"), err)
	}
	return window, glfw.Terminate, nil
}
