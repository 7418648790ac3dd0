package render

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tomz197/asteroid-destroyer/internal/draw"
	"github.com/tomz197/asteroid-destroyer/internal/game"
)

var (
	colorTitle    = draw.RGB(255, 80, 80)
	colorSubtitle = draw.RGB(140, 180, 255)
	colorBody     = draw.RGB(180, 180, 200)
	colorDim      = draw.RGB(150, 150, 180)
	colorPrompt   = draw.RGB(255, 255, 100)
	colorScore    = draw.RGB(255, 220, 80)
	colorLabel    = draw.RGB(255, 255, 255)
	colorPaused   = draw.RGB(150, 180, 255)
	colorWin      = draw.RGB(100, 255, 150)
)

const (
	fieldW = float64(game.FieldWidth)
	fieldH = float64(game.FieldHeight)
)

// drawUI writes the text overlay for the current state.
func (r *Renderer) drawUI(snap game.Snapshot) {
	switch snap.State {
	case game.StateStart:
		r.drawStartScreen(snap)
	case game.StatePlaying:
		r.drawHUD(snap)
	case game.StatePaused:
		r.drawHUD(snap)
		r.drawPauseOverlay()
	case game.StateGameOver:
		r.drawHUD(snap)
		r.drawGameOverScreen(snap)
	case game.StateWin:
		r.drawWinScreen(snap)
	}

	if r.notice != "" {
		r.textAt(r.canvas.TerminalWidth()/2-utf8.RuneCountInString(r.notice)/2, r.canvas.TerminalHeight(), colorPrompt, r.notice)
	}
}

// blinkOn reports whether blinking prompts are visible on this frame.
func blinkOn(frame int) bool {
	return frame%60 < 40
}

// text writes s centered on the logical point (x, y) and marks the cells so
// the canvas repaints them once the text is gone.
func (r *Renderer) text(x, y float64, fg draw.Color, s string) {
	col, row := r.canvas.LogicalToTerminal(x, y)
	r.textAt(col-utf8.RuneCountInString(s)/2, row, fg, s)
}

// textLeft writes s starting at the logical point (x, y).
func (r *Renderer) textLeft(x, y float64, fg draw.Color, s string) {
	col, row := r.canvas.LogicalToTerminal(x, y)
	r.textAt(col, row, fg, s)
}

func (r *Renderer) textAt(col, row int, fg draw.Color, s string) {
	if row < 1 || row > r.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	n := utf8.RuneCountInString(s)
	if over := col + n - 1 - r.canvas.TerminalWidth(); over > 0 {
		if over >= n {
			return
		}
		s = string([]rune(s)[:n-over])
		n -= over
	}
	r.chunkWriter.WriteColorAt(col, row, fg, s)
	r.canvas.MarkTextDirty(col, row, n)
}

// drawStartScreen draws the title screen.
func (r *Renderer) drawStartScreen(snap game.Snapshot) {
	r.text(fieldW/2, fieldH*0.22, colorTitle, "A S T E R O I D   D E S T R O Y E R")
	r.text(fieldW/2, fieldH*0.32, colorSubtitle, "~ JOURNEY HOME ~")

	r.text(fieldW/2, fieldH*0.44, colorBody, "Navigate through the asteroid belt")
	r.text(fieldW/2, fieldH*0.49, colorBody, "and reach Earth to survive!")

	controlLines := []string{
		"WASD / Arrow Keys  --  Move",
		"SPACE  --  Fire Missiles",
		"P  --  Pause",
		"Q  --  Quit",
	}
	for i, line := range controlLines {
		r.text(fieldW/2, fieldH*(0.60+0.05*float64(i)), colorDim, line)
	}

	if blinkOn(snap.Frame) {
		r.text(fieldW/2, fieldH*0.84, colorPrompt, ">>  Press ENTER to Launch  <<")
	}

	if snap.HighScore > 0 {
		r.text(fieldW/2, fieldH*0.92, colorDim, fmt.Sprintf("High Score: %d", snap.HighScore))
	}
}

// drawHUD draws the in-game HUD.
func (r *Renderer) drawHUD(snap game.Snapshot) {
	r.text(55, 10, colorBody, "SCORE")
	r.text(55, 30, colorScore, fmt.Sprintf("%d", snap.Score))

	r.text(barX+barW/2, barY+barH/2, colorLabel, "EARTH")
	r.textLeft(barX+barW+10, barY+barH/2, colorBody, fmt.Sprintf("%ds", snap.Remaining))
}

// drawPauseOverlay draws the pause banner over the dimmed scene.
func (r *Renderer) drawPauseOverlay() {
	r.text(fieldW/2, fieldH/2-20, colorPaused, "P A U S E D")
	r.text(fieldW/2, fieldH/2+30, colorBody, "Press P to Resume")
}

// drawGameOverScreen draws the crash summary.
func (r *Renderer) drawGameOverScreen(snap game.Snapshot) {
	r.text(fieldW/2, fieldH/3, colorTitle, "S H I P   D E S T R O Y E D")

	pct := int(math.Floor(snap.Progress * 100))
	r.text(fieldW/2, fieldH/2-20, colorBody, fmt.Sprintf("Distance to Earth: %d%% complete", pct))
	r.text(fieldW/2, fieldH/2+20, colorScore, fmt.Sprintf("Score: %d", snap.Score))
	r.text(fieldW/2, fieldH/2+55, colorDim, fmt.Sprintf("High Score: %d", snap.HighScore))

	if blinkOn(snap.Frame) {
		r.text(fieldW/2, fieldH*0.78, colorPrompt, ">>  Press ENTER to Retry  <<")
	}
}

// drawWinScreen reveals the victory text as the planet approaches.
func (r *Renderer) drawWinScreen(snap game.Snapshot) {
	t := float64(snap.StateFrames) / game.TicksPerSecond

	fade := math.Min(1, t*100/255)
	r.text(fieldW/2, fieldH*0.15, colorWin.Scale(fade), "E A R T H   R E A C H E D !")

	if t > 1.5 {
		r.text(fieldW/2, fieldH*0.78, colorScore, fmt.Sprintf("Final Score: %d", snap.Score))
		r.text(fieldW/2, fieldH*0.84, colorDim, fmt.Sprintf("High Score: %d", snap.HighScore))
	}

	if t > 3 && blinkOn(snap.Frame) {
		r.text(fieldW/2, fieldH*0.92, colorPrompt, ">>  Press ENTER to Play Again  <<")
	}
}
