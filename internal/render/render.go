// Package render draws game snapshots to an ANSI terminal.
package render

import (
	"io"

	"github.com/tomz197/asteroid-destroyer/internal/draw"
	"github.com/tomz197/asteroid-destroyer/internal/game"
)

// Max render resolution. Larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 90
)

// termAspect is the columns/rows ratio that keeps the field's proportions
// with half-block pixels (two sub-pixels per row).
const termAspect = float64(game.FieldWidth) / game.FieldHeight * 2

// Renderer turns snapshots into terminal output for one connection.
type Renderer struct {
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	termSizeFunc draw.TermSizeFunc
	earth        *earthTexture

	prevState  game.State
	started    bool
	notice     string
	prevNotice string
}

// New creates a renderer writing to w. termSizeFunc reports the terminal
// size each frame; nil means the process's stdout.
func New(w io.Writer, termSizeFunc draw.TermSizeFunc) *Renderer {
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTermSize(termWidth, termHeight, MaxTermWidth, MaxTermHeight, termAspect)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, game.FieldWidth, game.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Renderer{
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		termSizeFunc: termSizeFunc,
		earth:        newEarthTexture(),
	}
}

// Frame draws one snapshot and flushes it to the terminal.
func (r *Renderer) Frame(snap game.Snapshot) error {
	r.updateScreen()

	// On state transitions, do a full terminal clear so text from the
	// previous screen doesn't persist.
	if !r.started || snap.State != r.prevState || (r.notice == "") != (r.prevNotice == "") {
		r.chunkWriter.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
		r.prevState = snap.State
		r.started = true
	}
	r.prevNotice = r.notice

	r.canvas.Clear()
	r.drawScene(snap)

	r.canvas.Render(r.chunkWriter)
	r.canvas.RenderBorder(r.chunkWriter)

	r.drawUI(snap)

	return r.chunkWriter.Flush()
}

// SetNotice shows msg on the bottom line over every screen; empty hides it.
func (r *Renderer) SetNotice(msg string) {
	r.notice = msg
}

// PointerToLogical maps a 1-based terminal cell (as reported by the mouse)
// to field coordinates.
func (r *Renderer) PointerToLogical(col, row int) (x, y float64) {
	return r.canvas.TerminalToLogical(col, row)
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (r *Renderer) updateScreen() {
	termWidth, termHeight, err := r.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitTermSize(termWidth, termHeight, MaxTermWidth, MaxTermHeight, termAspect)

	if renderWidth != r.canvas.TerminalWidth() || renderHeight != r.canvas.TerminalHeight() ||
		offsetCol != r.canvas.OffsetCol() || offsetRow != r.canvas.OffsetRow() {
		r.chunkWriter.WriteString("\033[H\033[2J")
		r.canvas.ForceRedraw()
	}

	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.chunkWriter.SetOffset(offsetCol, offsetRow)
}
