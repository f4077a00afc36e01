// Package viewer is the interactive front end: a raylib window with a
// layout editor and a live view of a running board.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aco/camera"
	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/game"
	"github.com/pthm-cable/aco/geom"
	"github.com/pthm-cable/aco/inspector"
	"github.com/pthm-cable/aco/layout"
	"github.com/pthm-cable/aco/renderer"
	"github.com/pthm-cable/aco/scene"
	"github.com/pthm-cable/aco/telemetry"
	"github.com/pthm-cable/aco/ui"
)

const (
	controlsWidth = 220
	statsWidth    = 290
	pickRadius    = 8 // screen pixels
	zoomStep      = 1.1

	editHelp = "[LMB] place  [RMB] remove obstacle  [Wheel] zoom  [MMB] pan  [Enter] start  [C] panel"
	runHelp  = "[Space] pause  [Esc] deselect  [Wheel] zoom  [MMB] pan  [R] reset view  [Backspace] edit  [C] panel"
)

// Options configures a viewer session.
type Options struct {
	Layout    *layout.Layout           // initial layout, nil = empty editor
	SavePath  string                   // where Save layout writes
	Output    *telemetry.OutputManager // nil disables CSV output
	Seed      int64
	LogStats  bool
	AutoStart bool // start the board at once when the layout is complete
}

// Viewer owns the window state. All methods run on the window goroutine.
type Viewer struct {
	cfg  *config.Config
	opts Options

	cam       *camera.Camera
	board     *renderer.BoardRenderer
	hud       *ui.HUD
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry
	stats     *ui.StatsPanel
	perf      *ui.PerfPanel
	inspector *inspector.Inspector

	editor *editor
	run    *session

	message string
}

// session is one board run inside the viewer.
type session struct {
	board   *game.Board
	scene   *scene.Scene
	perf    *telemetry.PerfCollector
	monitor *game.Monitor
	cancel  context.CancelFunc
	done    chan error
	err     error // Run result once done
}

// New creates a viewer. The window is opened by Run.
func New(cfg *config.Config, opts Options) *Viewer {
	w, h := float32(cfg.Screen.Width), float32(cfg.Screen.Height)
	world := geom.Rect{W: float64(w), H: float64(h)}
	if opts.Layout != nil {
		world = opts.Layout.Bounds
	}

	cam := camera.New(w, h, world)
	return &Viewer{
		cfg:       cfg,
		opts:      opts,
		cam:       cam,
		board:     renderer.NewBoardRenderer(cam, renderer.NewPalette(cfg.Colors)),
		hud:       ui.NewHUD(),
		controls:  ui.NewControlsPanel(10, 120, controlsWidth),
		overlays:  ui.NewOverlayRegistry(),
		stats:     ui.NewStatsPanel(int32(w)-statsWidth-panelGap, panelGap, statsWidth),
		perf:      ui.NewPerfPanel(int32(w)-statsWidth-panelGap, panelGap, statsWidth),
		inspector: inspector.NewInspector(int32(w), int32(h)),
		editor:    newEditor(opts.Layout, cfg.Settings()),
	}
}

// Run opens the window and runs the frame loop until the window is closed
// or ctx is done. A running board is stopped before Run returns.
func (v *Viewer) Run(ctx context.Context) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(v.cfg.Screen.Width), int32(v.cfg.Screen.Height), "Ant Colony")
	defer rl.CloseWindow()
	rl.SetExitKey(0)
	rl.SetTargetFPS(int32(v.cfg.Screen.TargetFPS))

	if v.opts.AutoStart && v.editor.canStart() {
		v.start(ctx)
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		v.update(ctx)
		v.draw(ctx)
	}
	return v.stopRun()
}

func (v *Viewer) update(ctx context.Context) {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	v.cam.Resize(float32(sw), float32(sh))
	v.inspector.Resize(int32(sw), int32(sh))

	v.handleCamera()
	v.handleKeys(ctx)

	mouse := rl.GetMousePosition()
	overPanel := v.controls.Contains(mouse.X, mouse.Y)

	if v.run == nil {
		if !overPanel {
			// Placement errors repeat every frame of a drag; show them
			// without logging.
			if err := v.editor.handleMouse(v.cam, mouse); err != nil {
				v.message = err.Error()
			}
		}
		return
	}

	select {
	case err := <-v.run.done:
		// The board stopped on its own; keep showing its final state.
		v.run.done = nil
		v.run.err = err
		if err != nil {
			v.report(fmt.Errorf("board: %w", err))
		}
	default:
	}

	v.run.perf.RecordFrame()
	v.run.monitor.Poll()

	if !overPanel {
		v.inspector.HandleInput(mouse.X, mouse.Y, v.pick)
	}
}

func (v *Viewer) pick(sx, sy float32) (components.AntID, bool) {
	wx, wy := v.cam.ScreenToWorld(sx, sy)
	return v.run.scene.AntAt(wx, wy, pickRadius/v.cam.Zoom)
}

func (v *Viewer) handleCamera() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		factor := float32(zoomStep)
		if wheel < 0 {
			factor = 1 / factor
		}
		v.cam.ZoomAt(m.X, m.Y, factor)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
}

func (v *Viewer) handleKeys(ctx context.Context) {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeyC:
			v.controls.Toggle()
		case rl.KeyR:
			v.cam.Reset()
		case rl.KeyEscape:
			v.inspector.Deselect()
		case rl.KeySpace:
			if v.run != nil {
				v.run.board.TogglePause()
			}
		case rl.KeyEnter:
			if v.run == nil && v.editor.canStart() {
				v.start(ctx)
			}
		case rl.KeyBackspace:
			v.report(v.stopRun())
		default:
			v.overlays.HandleKeyPress(key)
		}
	}
}

// apply carries out the controls panel actions for this frame.
func (v *Viewer) apply(ctx context.Context, a ui.ControlsAction) {
	if v.run == nil {
		v.editor.tool = a.Tool
		switch {
		case a.DefaultLayout:
			v.editor.reset(layout.Default())
			v.cam.SetWorld(v.editor.builder.Bounds())
		case a.ClearLayout:
			v.editor.builder.Clear()
		case a.SaveLayout:
			v.save()
		case a.Start:
			v.start(ctx)
		}
		return
	}
	switch {
	case a.TogglePause:
		v.run.board.TogglePause()
	case a.ResetCamera:
		v.cam.Reset()
	case a.Stop:
		v.report(v.stopRun())
	}
}

func (v *Viewer) save() {
	l, err := v.editor.builder.Build()
	if err != nil {
		v.report(err)
		return
	}
	if err := l.Save(v.opts.SavePath); err != nil {
		v.report(err)
		return
	}
	v.message = "saved " + v.opts.SavePath
	slog.Info("layout saved", "path", v.opts.SavePath)
}

// start builds a board from the editor and runs it in the background.
func (v *Viewer) start(ctx context.Context) {
	perf := telemetry.NewPerfCollector(120)
	collector := telemetry.NewCollector(time.Duration(v.cfg.Telemetry.StatsWindow * float64(time.Second)))
	b, err := game.Build(v.editor.builder, v.cfg.Settings(), game.Options{
		Seed:      v.opts.Seed,
		Collector: collector,
		Perf:      perf,
	})
	if err != nil {
		v.report(err)
		return
	}

	s := b.Settings()
	sc := scene.New(components.Footprint{SemiMajor: float32(s.SemiMajorAxis), SemiMinor: float32(s.SemiMinorAxis)})
	if err := b.Subscribe(sc); err != nil {
		b.Stop()
		v.report(err)
		return
	}
	if err := v.opts.Output.WriteLayout(b.Layout()); err != nil {
		slog.Error("failed to write layout snapshot", "error", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- b.Run(runCtx) }()

	v.run = &session{
		board:   b,
		scene:   sc,
		perf:    perf,
		monitor: game.NewMonitor(b, v.opts.Output, v.opts.LogStats),
		cancel:  cancel,
		done:    done,
	}
	v.cam.SetWorld(b.Bounds())
	v.message = ""
	slog.Info("board started", "ants", s.MaxAnts, "obstacles", len(b.Obstacles()))
}

// stopRun stops the current board, if any, and returns to the editor.
func (v *Viewer) stopRun() error {
	if v.run == nil {
		return nil
	}
	r := v.run
	v.run = nil
	v.inspector.Deselect()

	r.board.Stop()
	r.cancel()
	err := r.err
	if r.done != nil {
		err = <-r.done
	}
	r.monitor.Flush()
	slog.Info("board stopped", "windows", r.monitor.Windows())
	if errors.Is(err, game.ErrStopped) {
		return nil
	}
	return err
}

// report shows err in the HUD and logs it.
func (v *Viewer) report(err error) {
	if err == nil {
		return
	}
	v.message = err.Error()
	slog.Warn("viewer", "error", err)
}
