package view

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/vvzen/acesrender"
)

var (
	styleInput  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// draw paints the preview, the filename input line and the status line.
// Each terminal cell shows two vertically stacked pixels via a half
// block, the upper one as foreground and the lower one as background.
func draw(screen tcell.Screen, s State) {
	screen.Clear()
	w, h := screen.Size()
	if s.Display != nil && h > 2 {
		drawPreview(screen, acesrender.Preview(s.Display, w, (h-2)*2), w)
	}
	input := "file: " + s.FileName + "  (saves as " + s.SavePath() + ")"
	drawText(screen, 0, h-2, w, input, styleInput)
	drawText(screen, 0, h-1, w, "[Ctrl-R] render  [Enter] save  [Esc] quit  "+s.Status, styleStatus)
	screen.Show()
}

func drawPreview(screen tcell.Screen, img *image.NRGBA, screenW int) {
	b := img.Bounds()
	offX := (screenW - b.Dx()) / 2
	if offX < 0 {
		offX = 0
	}
	for cy := 0; cy*2 < b.Dy(); cy++ {
		for x := 0; x < b.Dx(); x++ {
			top := img.NRGBAAt(b.Min.X+x, b.Min.Y+cy*2)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if cy*2+1 < b.Dy() {
				bot := img.NRGBAAt(b.Min.X+x, b.Min.Y+cy*2+1)
				style = style.Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			}
			screen.SetContent(offX+x, cy, '▀', nil, style)
		}
	}
}

func drawText(screen tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxW {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	// Pad the rest of the line so the bar reaches the edge.
	for ; col < x+maxW; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}
