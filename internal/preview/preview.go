// Package preview draws computed image rectangles on a character canvas.
package preview

import (
	"fmt"
	"strings"

	"github.com/1broseidon/aetherwave/internal/platform"
)

// Render maps rects from a windowW x windowH window onto a width x height
// canvas and returns its lines. Slots are numbered from 1; empty rects are
// not drawn.
func Render(rects []platform.Rect, windowW, windowH, width, height int) []string {
	if width < 5 || height < 3 {
		return emptyCanvas(width, height)
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	drawBorder(canvas, width, height)
	if windowW <= 0 || windowH <= 0 {
		return toLines(canvas)
	}

	for i, rect := range rects {
		if rect.Empty() {
			continue
		}
		drawTile(canvas, rect, i+1, windowW, windowH, width, height)
	}

	return toLines(canvas)
}

// Summary describes rect sizes in one line.
func Summary(rects []platform.Rect) string {
	placed := 0
	var minW, minH, maxW, maxH int
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		if placed == 0 {
			minW, minH, maxW, maxH = r.Width, r.Height, r.Width, r.Height
		}
		placed++
		minW = min(minW, r.Width)
		minH = min(minH, r.Height)
		maxW = max(maxW, r.Width)
		maxH = max(maxH, r.Height)
	}

	switch {
	case placed == 0:
		return "no images placed"
	case minW == maxW && minH == maxH:
		return fmt.Sprintf("%d placed • %d×%d px each", placed, minW, minH)
	default:
		return fmt.Sprintf("%d placed • min %d×%d • max %d×%d", placed, minW, minH, maxW, maxH)
	}
}

func toLines(canvas [][]rune) []string {
	lines := make([]string, len(canvas))
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return lines
}

func drawTile(canvas [][]rune, rect platform.Rect, num int, winW, winH, canvasW, canvasH int) {
	x1 := rect.X * canvasW / winW
	y1 := rect.Y * canvasH / winH
	x2 := (rect.X + rect.Width) * canvasW / winW
	y2 := (rect.Y + rect.Height) * canvasH / winH

	// Inside the outer border.
	x1 = max(x1, 1)
	y1 = max(y1, 1)
	x2 = min(x2, canvasW-2)
	y2 = min(y2, canvasH-2)

	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x <= x2; x++ {
		canvas[y1][x] = '─'
		canvas[y2][x] = '─'
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = '│'
		canvas[y][x2] = '│'
	}
	canvas[y1][x1] = '┌'
	canvas[y1][x2] = '┐'
	canvas[y2][x1] = '└'
	canvas[y2][x2] = '┘'

	centerY := (y1 + y2) / 2
	centerX := (x1 + x2) / 2
	if centerY > y1 && centerY < y2 && centerX > x1 && centerX < x2 {
		label := fmt.Sprintf("%d", num)
		startX := centerX - len(label)/2
		for i, r := range label {
			if startX+i > x1 && startX+i < x2 {
				canvas[centerY][startX+i] = r
			}
		}
	}
}

func drawBorder(canvas [][]rune, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '═'
		canvas[height-1][x] = '═'
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '║'
		canvas[y][width-1] = '║'
	}
	canvas[0][0] = '╔'
	canvas[0][width-1] = '╗'
	canvas[height-1][0] = '╚'
	canvas[height-1][width-1] = '╝'
}

func emptyCanvas(width, height int) []string {
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	empty := strings.Repeat(" ", max(width, 0))
	for i := range lines {
		lines[i] = empty
	}
	return lines
}
