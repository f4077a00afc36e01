package viewer

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/inspector"
	"github.com/pthm-cable/aco/renderer"
	"github.com/pthm-cable/aco/ui"
)

const panelGap = 10

func (v *Viewer) draw(ctx context.Context) {
	rl.BeginDrawing()
	rl.ClearBackground(v.board.Palette.Background)

	help := editHelp
	if v.run == nil {
		v.drawEditor()
	} else {
		v.drawRun()
		help = runHelp
	}

	v.hud.Draw(v.hudData())
	v.hud.DrawControls(int32(rl.GetScreenHeight()), help)
	action := v.controls.Draw(v.controlsState(), v.overlays)

	rl.EndDrawing()
	v.apply(ctx, action)
}

func (v *Viewer) drawEditor() {
	b := v.editor.builder
	p := v.board.Palette

	v.board.DrawBounds(b.Bounds())
	v.board.DrawObstacles(b.Obstacles())
	if cur, ok := b.CurrentObstacle(); ok {
		v.board.DrawObstacle(cur, p.Pending)
	}
	if src, ok := b.Source(); ok {
		v.board.DrawRegion(src, p.Source)
	}
	if dst, ok := b.Destination(); ok {
		v.board.DrawRegion(dst, p.Destination)
	}
}

func (v *Viewer) drawRun() {
	r := v.run
	p := v.board.Palette

	v.board.DrawBounds(r.board.Bounds())
	if v.overlays.IsEnabled(ui.OverlayTrails) {
		v.board.DrawTrails(r.scene)
	}
	v.board.DrawObstacles(r.board.Obstacles())
	v.board.DrawRegion(r.board.Source(), p.Source)
	v.board.DrawRegion(r.board.Destination(), p.Destination)

	selected, hasSelected := v.inspector.Selected()
	v.board.DrawAnts(r.scene, renderer.Layers{
		Footprints: v.overlays.IsEnabled(ui.OverlayFootprints),
		Headings:   v.overlays.IsEnabled(ui.OverlayHeadings),
	}, selected, hasSelected)

	right := int32(rl.GetScreenWidth()) - panelGap
	if hasSelected {
		details := v.details(selected)
		if view, ok := r.scene.Ant(selected); ok {
			sx, sy := v.cam.WorldToScreen(view.Location.X, view.Location.Y)
			tx, ty := v.cam.WorldToScreen(float32(details.Target.X), float32(details.Target.Y))
			v.inspector.DrawSelectionHighlight(sx, sy, tx, ty)
		}
		v.inspector.Draw(r.scene, details)
		right -= inspector.PanelWidth + panelGap
	}

	y := int32(panelGap)
	if v.overlays.IsEnabled(ui.OverlayStats) {
		v.stats.SetPosition(right-statsWidth, y)
		y = v.stats.Draw(r.monitor.Last()) + panelGap
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perf.SetPosition(right-statsWidth, y)
		v.perf.Draw(r.perf.Stats())
	}
}

// details looks up board-side facts for the inspector.
func (v *Viewer) details(id components.AntID) inspector.Details {
	a, ok := v.run.board.Ant(id)
	if !ok {
		return inspector.Details{}
	}
	target := v.run.board.Destination().Center
	if a.Returning() {
		target = v.run.board.Source().Center
	}
	return inspector.Details{CacheSize: a.CacheSize(), Target: target}
}

func (v *Viewer) hudData() ui.HUDData {
	d := ui.HUDData{
		Title:   "Ant Colony",
		MaxAnts: v.cfg.Colony.MaxAnts,
		FPS:     rl.GetFPS(),
		Message: v.message,
	}
	if v.run == nil {
		d.Mode = "Editing: " + v.editor.tool.String()
		return d
	}
	st := v.run.scene.Stats()
	d.Mode = "Running"
	d.Ants = st.Ants
	d.Returning = st.Returning
	d.Trips = st.Trips
	d.Pheromones = st.Trails
	d.ActiveTrails = st.ActiveTrails
	d.Paused = v.run.board.Paused()
	return d
}

func (v *Viewer) controlsState() ui.ControlsState {
	s := ui.ControlsState{
		Editing:  v.run == nil,
		Tool:     v.editor.tool,
		CanStart: v.editor.canStart(),
	}
	if v.run != nil {
		s.Paused = v.run.board.Paused()
	}
	return s
}
