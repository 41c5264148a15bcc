// Package window presents frames in an OpenGL window. raylib owns the window,
// context, input and buffer swap; the triangle list is drawn with a small
// go-gl shader program from two vertex buffers re-filled every frame.
//
// All methods must be called from the goroutine that called Open, which
// should be locked to its OS thread.
package window

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/mesh"
)

type Options struct {
	Width, Height int
	Title         string
	FPS           int
	FOV           float64 // degrees
	CameraZ       float64
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, Title: "splitbox", FPS: 60, FOV: 45, CameraZ: 4}
}

type Window struct {
	opts     Options
	program  uint32
	vao      uint32
	posVBO   uint32
	colVBO   uint32
	projLoc  int32
	viewLoc  int32
	status   string
	showHUD  bool
	logger   *slog.Logger
	uploaded int
}

// Open creates the window and GL resources.
func Open(opts Options) (*Window, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("open window: raylib could not create a %dx%d window", opts.Width, opts.Height)
	}
	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}

	if err := gl.Init(); err != nil {
		rl.CloseWindow()
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	program, err := newProgram()
	if err != nil {
		rl.CloseWindow()
		return nil, err
	}

	w := &Window{opts: opts, program: program, showHUD: true, logger: opts.Logger}
	w.projLoc = gl.GetUniformLocation(program, gl.Str("projection\x00"))
	w.viewLoc = gl.GetUniformLocation(program, gl.Str("view\x00"))

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.posVBO)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, mesh.PositionStride, gl.FLOAT, false, 0, 0)

	gl.GenBuffers(1, &w.colVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.colVBO)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, mesh.ColorStride, gl.FLOAT, false, 0, 0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	w.logger.Info("window opened",
		"width", opts.Width, "height", opts.Height,
		"gl_version", gl.GoStr(gl.GetString(gl.VERSION)))
	return w, nil
}

func (w *Window) Upload(positions, colors []float32) error {
	if len(positions)/mesh.PositionStride != len(colors)/mesh.ColorStride {
		return fmt.Errorf("position and color arrays disagree: %d vs %d vertices",
			len(positions)/mesh.PositionStride, len(colors)/mesh.ColorStride)
	}
	upload(w.posVBO, positions)
	upload(w.colVBO, colors)
	w.uploaded = len(positions) / mesh.PositionStride
	return nil
}

func upload(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw starts the frame and draws the uploaded triangle list with additive
// blending and without depth testing or culling.
func (w *Window) Draw(vertexCount int) error {
	if vertexCount > w.uploaded {
		return fmt.Errorf("draw %d vertices, only %d uploaded", vertexCount, w.uploaded)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.showHUD = !w.showHUD
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Blank)
	rl.DrawRenderBatchActive()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)

	proj, view := w.matrices()
	gl.UseProgram(w.program)
	gl.UniformMatrix4fv(w.projLoc, 1, false, &proj[0])
	gl.UniformMatrix4fv(w.viewLoc, 1, false, &view[0])
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(vertexCount))
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

// Present draws the overlay, swaps buffers and polls input. It returns
// frame.ErrClosed once the user closes the window.
func (w *Window) Present() error {
	if w.showHUD {
		rl.DrawText(w.status, 12, 12, 18, rl.RayWhite)
		rl.DrawFPS(int32(w.opts.Width)-90, 12)
	}
	rl.EndDrawing()
	if rl.WindowShouldClose() {
		return frame.ErrClosed
	}
	return nil
}

// SetStatus sets the overlay text shown on the next Present.
func (w *Window) SetStatus(s string) { w.status = s }

// OnFrame keeps the overlay in step with the driver.
func (w *Window) OnFrame(f *frame.Frame) {
	w.SetStatus(fmt.Sprintf("t=%.1fs  vertices=%d  nodes=%d  depth=%d", f.Time/1000, f.Vertices, f.Tree.Nodes, f.Tree.MaxDepth))
}

func (w *Window) Close() {
	gl.DeleteBuffers(1, &w.posVBO)
	gl.DeleteBuffers(1, &w.colVBO)
	gl.DeleteVertexArrays(1, &w.vao)
	gl.DeleteProgram(w.program)
	rl.CloseWindow()
	w.logger.Info("window closed")
}

func (w *Window) matrices() ([16]float32, [16]float32) {
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	proj := rl.MatrixPerspective(float32(w.opts.FOV)*rl.Deg2rad, aspect, 0.1, 100)
	view := rl.MatrixLookAt(
		rl.NewVector3(0, 0, float32(w.opts.CameraZ)),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
	)
	return flatten(proj), flatten(view)
}

// flatten lays a raylib matrix out column-major for glUniformMatrix4fv.
func flatten(m rl.Matrix) [16]float32 {
	return [16]float32{
		m.M0, m.M1, m.M2, m.M3,
		m.M4, m.M5, m.M6, m.M7,
		m.M8, m.M9, m.M10, m.M11,
		m.M12, m.M13, m.M14, m.M15,
	}
}
