package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Window handles GLFW window creation and cursor capture
type Window struct {
	glfwWindow    *glfw.Window
	width         int
	height        int
	mouseCaptured bool
	logger        zerolog.Logger

	// called after the capture state changes
	onCapture func(captured bool)
	// called after the framebuffer is resized
	onResize func(width, height int)
}

// NewWindow creates a new GLFW window with an OpenGL 4.6 core context.
// The caller must have locked the OS thread.
func NewWindow(width, height int, title string, vsync bool, logger zerolog.Logger) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info().
		Str("gl_version", gl.GoStr(gl.GetString(gl.VERSION))).
		Int("width", width).
		Int("height", height).
		Msg("Window created")

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)

	w := &Window{
		glfwWindow: glfwWindow,
		width:      width,
		height:     height,
		logger:     logger,
	}
	glfwWindow.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
	})
	glfwWindow.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	return w, nil
}

// Clear clears the screen
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the front and back buffers
func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// ShouldClose returns whether the window should close
func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

// Close releases all resources
func (w *Window) Close() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// Viewport returns the window size as a vector, the unit mouse motion is measured in
func (w *Window) Viewport() mgl32.Vec2 {
	return mgl32.Vec2{float32(w.width), float32(w.height)}
}

// Aspect returns width / height, or 1 for a minimized window
func (w *Window) Aspect() float32 {
	if w.height == 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}

// GLFWWindow returns the underlying GLFW window
func (w *Window) GLFWWindow() *glfw.Window {
	return w.glfwWindow
}

// OnResize registers fn to run after the framebuffer size changes
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

// OnCapture registers fn to run whenever the cursor is locked or released
func (w *Window) OnCapture(fn func(captured bool)) {
	w.onCapture = fn
}

// SetMouseCaptured locks and hides the cursor, or releases it
func (w *Window) SetMouseCaptured(captured bool) {
	if w.mouseCaptured == captured {
		return
	}
	w.mouseCaptured = captured

	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.glfwWindow.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	w.logger.Debug().Bool("captured", captured).Msg("Cursor capture changed")

	if w.onCapture != nil {
		w.onCapture(captured)
	}
}

// IsMouseCaptured returns whether the mouse is currently captured
func (w *Window) IsMouseCaptured() bool {
	return w.mouseCaptured
}

// HandleGrabButton locks the cursor on a left click
func (w *Window) HandleGrabButton(button glfw.MouseButton, action glfw.Action) {
	if button == glfw.MouseButton1 && action == glfw.Press {
		w.SetMouseCaptured(true)
	}
}

// HandleGrabKey releases the cursor on Escape
func (w *Window) HandleGrabKey(key glfw.Key, action glfw.Action) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetMouseCaptured(false)
	}
}
