package loop

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/draw"
	"github.com/tomz197/spacepirate/internal/object"
)

const (
	starCount       = 60
	starScrollSpeed = 4 // Logical pixels per frame
)

// star is a background point. Stars scroll down and wrap.
type star struct {
	x, y float64
}

// screen renders frames onto a terminal.
type screen struct {
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	termSize draw.TermSizeFunc

	prevPhase Phase
	stars     []star
	scroll    float64
	frames    int
}

func newScreen(w io.Writer, termSize draw.TermSizeFunc, seed int64) *screen {
	termWidth, termHeight, _ := termSize()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	rng := rand.New(rand.NewSource(seed))
	stars := make([]star, starCount)
	for i := range stars {
		stars[i] = star{
			x: rng.Float64() * config.FieldWidth,
			y: rng.Float64() * config.FieldHeight,
		}
	}

	return &screen{
		canvas:    canvas,
		cw:        draw.NewChunkWriter(w, offsetCol, offsetRow),
		termSize:  termSize,
		prevPhase: -1,
		stars:     stars,
	}
}

// clampTermSize fits the playfield's aspect ratio into the terminal, capped
// at the max render resolution, and computes the centering offset.
// Half-block pixels are roughly square, so a row holds two pixel rows.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)

	// renderWidth / (renderHeight*2) should equal FieldWidth / FieldHeight
	if renderWidth*config.FieldHeight > renderHeight*2*config.FieldWidth {
		renderWidth = max(renderHeight*2*config.FieldWidth/config.FieldHeight, 1)
	} else {
		renderHeight = max(renderWidth*config.FieldHeight/(2*config.FieldWidth), 1)
	}

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// resize follows terminal size changes.
func (s *screen) resize() {
	termWidth, termHeight, err := s.termSize()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	c := s.canvas
	if renderWidth != c.TerminalWidth() || renderHeight != c.TerminalHeight() ||
		offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
		s.cw.WriteString("\033[H\033[2J")
		c.ForceRedraw()
	}
	c.Resize(renderWidth, renderHeight)
	c.SetOffset(offsetCol, offsetRow)
	s.cw.SetOffset(offsetCol, offsetRow)
}

// draw renders one frame and flushes it.
func (s *screen) draw(f Frame) error {
	s.frames++
	s.resize()

	// On phase transitions do a full clear so text from the previous
	// screen does not persist.
	if f.HUD.Phase != s.prevPhase {
		s.cw.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevPhase = f.HUD.Phase
	}

	c := s.canvas
	c.Clear()
	s.drawStars(f.HUD.Phase != PhaseGameOver)
	for _, sp := range f.Sprites {
		drawSprite(c, sp)
	}

	// The canvas writes relative to the terminal origin; the chunk writer
	// adds its own offset only to MoveCursor.
	if err := c.Render(s.cw); err != nil {
		return err
	}
	if err := c.RenderBorder(s.cw); err != nil {
		return err
	}

	s.drawUI(f)
	return s.cw.Flush()
}

func (s *screen) drawStars(moving bool) {
	if moving {
		s.scroll += starScrollSpeed
		if s.scroll >= config.FieldHeight {
			s.scroll -= config.FieldHeight
		}
	}
	for _, st := range s.stars {
		y := st.y + s.scroll
		if y >= config.FieldHeight {
			y -= config.FieldHeight
		}
		s.canvas.Set(st.x, y, draw.ColorGray)
	}
}

// weaponPalette is the display color of each weapon and of the enemy it destroys.
var weaponPalette = map[object.WeaponColor]draw.Color{
	object.Green:  draw.ColorGreen,
	object.Red:    draw.ColorRed,
	object.Yellow: draw.ColorYellow,
}

// enemyColor shows each enemy in the color of the weapon that destroys it.
func enemyColor(k object.Kind) draw.Color {
	ek, ok := k.EnemyKind()
	if !ok {
		return draw.ColorWhite
	}
	for color, palette := range weaponPalette {
		if object.Destroys(color, ek) {
			return palette
		}
	}
	return draw.ColorWhite
}

// drawSprite paints a simple silhouette for each entity kind.
func drawSprite(c *draw.Canvas, sp Sprite) {
	b := sp.Box
	switch sp.Kind {
	case object.KindPlayer:
		// Hull, cabin and a cannon on the gun side
		c.FillRect(b.X, b.Y+b.H*0.5, b.W, b.H*0.5, draw.ColorCyan)
		c.FillRect(b.X+b.W*0.25, b.Y+b.H*0.2, b.W*0.5, b.H*0.4, draw.ColorCyan)
		gunX := b.X + b.W/2 + float64(sp.Facing*config.PlayerGunOffset)
		c.FillRect(gunX-3, b.Y, 6, b.H*0.5, draw.ColorWhite)
	case object.KindEnemyA, object.KindEnemyB, object.KindEnemyC:
		col := enemyColor(sp.Kind)
		c.FillRect(b.X, b.Y, b.W, b.H*0.6, col)
		switch sp.Kind {
		case object.KindEnemyB:
			// Ram
			c.FillRect(b.X+b.W*0.3, b.Y+b.H*0.6, b.W*0.4, b.H*0.4, col)
		default:
			// Bomb bay beside the gun
			c.FillRect(b.X+b.W*0.1, b.Y+b.H*0.6, b.W*0.2, b.H*0.4, col)
			c.FillRect(b.X+b.W/2+config.EnemyGunOffset-3, b.Y+b.H*0.6, 6, b.H*0.4, draw.ColorWhite)
		}
	case object.KindProjectile:
		col := draw.ColorMagenta
		if sp.Faction == object.FactionPlayer {
			col = weaponPalette[sp.Color]
		}
		c.FillRect(b.X, b.Y, b.W, b.H, col)
	case object.KindExplosion:
		c.FillRect(b.X, b.Y, b.W, b.H, draw.ColorOrange)
		c.FillRect(b.X+b.W*0.25, b.Y+b.H*0.25, b.W*0.5, b.H*0.5, draw.ColorYellow)
	}
}

// drawUI draws the text overlay for the current phase.
func (s *screen) drawUI(f Frame) {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch f.HUD.Phase {
	case PhaseTitle:
		s.drawStartScreen(centerX, centerY)
	case PhasePlaying:
		s.drawPlayingHUD(f.HUD, termWidth, termHeight)
	case PhaseGameOver:
		s.drawGameOverScreen(f.HUD, centerX, centerY)
	}
}

// writeText writes s and marks the cells it covers so the canvas repaints
// them on the next frame.
func (s *screen) writeText(col, row int, text string, color draw.Color) {
	if color == draw.ColorNone {
		s.cw.WriteAt(col, row, text)
	} else {
		s.cw.WriteColorAt(col, row, text, color)
	}
	s.canvas.MarkTextDirty(col, row, len([]rune(text)))
}

func (s *screen) writeCentered(centerX, row int, text string, color draw.Color) {
	s.writeText(centerX-len([]rune(text))/2, row, text, color)
}

// blinkOn alternates roughly every 600ms at the tick rate.
func (s *screen) blinkOn() bool {
	return s.frames/(config.TickRate*6/10)%2 == 0
}

// drawStartScreen draws the title screen.
func (s *screen) drawStartScreen(centerX, centerY int) {
	title := "S P A C E   P I R A T E"
	titleY := centerY - 7
	s.writeCentered(centerX, titleY, title, draw.ColorCyan)
	s.writeCentered(centerX, titleY+1, strings.Repeat("~", len(title)), draw.ColorGray)

	goal := fmt.Sprintf("Survive for %d seconds", int(config.SurvivalDuration/time.Second))
	s.writeCentered(centerX, titleY+3, goal, draw.ColorNone)

	legend := []struct {
		text  string
		color draw.Color
	}{
		{"Green weapon destroys green ships", draw.ColorGreen},
		{"Red weapon destroys red ships    ", draw.ColorRed},
		{"Yellow weapon destroys yellow ships", draw.ColorYellow},
	}
	for i, l := range legend {
		s.writeCentered(centerX, titleY+5+i, l.text, l.color)
	}

	controlsY := titleY + 9
	controlLines := []string{
		"A D / < >  . . . . . . Move",
		"1 2 3  . . . . Select weapon",
		"SPACE  . . . . . . . . Fire",
		"Q / ESC  . . . . . . . Quit",
	}
	for i, line := range controlLines {
		s.writeCentered(centerX, controlsY+i, line, draw.ColorNone)
	}

	prompt := ">>  Press ENTER to Start  <<"
	if s.blinkOn() {
		s.writeCentered(centerX, controlsY+len(controlLines)+1, prompt, draw.ColorWhite)
	} else {
		s.writeCentered(centerX, controlsY+len(controlLines)+1, strings.Repeat(" ", len(prompt)), draw.ColorNone)
	}
}

// drawPlayingHUD draws the score, equipped weapon and time left.
// Fields are fixed-width so shrinking values leave no residue.
func (s *screen) drawPlayingHUD(hud HUD, termWidth, termHeight int) {
	s.writeText(2, 1, fmt.Sprintf("Score: %-4d", hud.Score), draw.ColorWhite)

	weapon := fmt.Sprintf("Weapon: %-6s", strings.ToUpper(hud.Weapon.String()))
	s.writeText(termWidth/2-len(weapon)/2, 1, weapon, weaponPalette[hud.Weapon])

	secs := int((hud.Remaining + time.Second - 1) / time.Second)
	timeText := fmt.Sprintf("Time: %-2d", secs)
	timeColor := draw.ColorWhite
	if secs <= 10 {
		timeColor = draw.ColorYellow
	}
	s.writeText(termWidth-len(timeText)-1, 1, timeText, timeColor)

	keys := "1 Green  2 Red  3 Yellow"
	if len(keys)+2 <= termWidth {
		s.writeText(2, termHeight, keys, draw.ColorGray)
	}
}

// drawGameOverScreen draws the final screen.
func (s *screen) drawGameOverScreen(hud HUD, centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	titleStartY := centerY - 5
	if titleWidth+2 <= s.canvas.TerminalWidth() {
		for i, line := range titleArt {
			s.writeText(centerX-titleWidth/2, titleStartY+i, line, draw.ColorWhite)
		}
	} else {
		s.writeCentered(centerX, titleStartY+len(titleArt)-1, "GAME OVER", draw.ColorWhite)
	}

	outcome := "Your ship was destroyed"
	outcomeColor := draw.ColorRed
	if hud.Outcome == OutcomeSurvived {
		outcome = "You survived!"
		outcomeColor = draw.ColorGreen
	}
	s.writeCentered(centerX, titleStartY+len(titleArt)+1, outcome, outcomeColor)
	s.writeCentered(centerX, titleStartY+len(titleArt)+3, fmt.Sprintf("Score: %d", hud.Score), draw.ColorWhite)

	prompt := "Press Q or ESC to exit"
	if s.blinkOn() {
		s.writeCentered(centerX, titleStartY+len(titleArt)+5, prompt, draw.ColorNone)
	} else {
		s.writeCentered(centerX, titleStartY+len(titleArt)+5, strings.Repeat(" ", len(prompt)), draw.ColorNone)
	}
}
