// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "github.com/kryonlabs/kryon-sub005/ir"

// resolveTracks implements §4.2.5 steps 1-3: subtract gaps from the
// available size, assign fixed/percentage tracks, then divide the
// remainder across FR-weighted tracks. AUTO/MIN_CONTENT/MAX_CONTENT
// tracks are treated as 1fr, per the explicit approximation retained
// from §9 Open Question 1 ("do not silently improve").
func resolveTracks(tracks []ir.GridTrack, available, gap float32) []float32 {
	n := len(tracks)
	sizes := make([]float32, n)
	if n == 0 {
		return sizes
	}
	trackAvailable := available - float32(n-1)*gap
	if trackAvailable < 0 {
		trackAvailable = 0
	}

	var fixedTotal float32
	var totalFR float32
	frWeight := make([]float32, n)
	for i, t := range tracks {
		switch t.Kind {
		case ir.TrackPX:
			sizes[i] = t.Value
			fixedTotal += t.Value
		case ir.TrackPercent:
			sizes[i] = trackAvailable * t.Value / 100
			fixedTotal += sizes[i]
		case ir.TrackFR:
			frWeight[i] = t.Value
			totalFR += t.Value
		default: // AUTO, MIN_CONTENT, MAX_CONTENT: treated as 1fr (§9 OQ1)
			frWeight[i] = 1
			totalFR += 1
		}
	}

	remainder := trackAvailable - fixedTotal
	if remainder < 0 {
		remainder = 0
	}
	if totalFR > 0 {
		for i := range tracks {
			if frWeight[i] > 0 {
				sizes[i] = remainder * frWeight[i] / totalFR
			}
		}
	}
	return sizes
}

// trackPositions returns cumulative start offsets for each track plus a
// trailing sentinel, given resolved sizes and an inter-track gap.
func trackPositions(sizes []float32, gap, offset float32) []float32 {
	pos := make([]float32, len(sizes)+1)
	pos[0] = offset
	for i, s := range sizes {
		pos[i+1] = pos[i] + s + gap
	}
	return pos
}

// gridCursor walks auto-placement slots row-major or column-major
// (§4.2.5 step 5 "auto-place").
type gridCursor struct {
	row, col   int
	rowMajor   bool
	rowCount   int
	colCount   int
}

func newGridCursor(rowMajor bool, rowCount, colCount int) *gridCursor {
	return &gridCursor{rowMajor: rowMajor, rowCount: rowCount, colCount: colCount}
}

// next returns the next (row, col) slot and advances the cursor, wrapping
// when a bound is hit. Dense packing (reserving occupied cells) is
// declared in the spec but not implemented, per §9 Open Question 2.
func (g *gridCursor) next() (row, col int) {
	row, col = g.row, g.col
	if g.rowMajor {
		g.col++
		if g.colCount > 0 && g.col >= g.colCount {
			g.col = 0
			g.row++
		}
	} else {
		g.row++
		if g.rowCount > 0 && g.row >= g.rowCount {
			g.row = 0
			g.col++
		}
	}
	return row, col
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// layoutGrid implements the grid solver of §4.2.5 over c's grid tracks
// and children.
func (e *Engine) layoutGrid(c *ir.Component, innerW, innerH float32) {
	grid := c.Layout.Grid
	if grid == nil {
		grid = &ir.Grid{}
	}

	colSizes := resolveTracks(grid.Columns, innerW, grid.ColumnGap)
	rowSizes := resolveTracks(grid.Rows, innerH, grid.RowGap)
	// Track positions are relative to c's own origin, matching
	// setChildBounds's convention (flex.go's paddingStart does the same):
	// offset by the content box's padding rather than starting at 0 (§4.2.5
	// step 4 "offset by parent padding").
	colPos := trackPositions(colSizes, grid.ColumnGap, paddingStart(c, false))
	rowPos := trackPositions(rowSizes, grid.RowGap, paddingStart(c, true))

	rowMajor := grid.AutoFlow == ir.AutoFlowRow
	cursor := newGridCursor(rowMajor, len(grid.Rows), len(grid.Columns))

	for _, child := range c.Children {
		if !child.Visible() {
			continue
		}
		item := child.Grid
		var rowStart, rowEnd, colStart, colEnd int
		if !item.IsAutoPlaced() {
			rowStart = int(item.RowStart)
			colStart = int(item.ColumnStart)
			if item.RowEnd >= 0 {
				rowEnd = int(item.RowEnd)
			} else {
				rowEnd = rowStart + 1
			}
			if item.ColumnEnd >= 0 {
				colEnd = int(item.ColumnEnd)
			} else {
				colEnd = colStart + 1
			}
		} else {
			rowStart, colStart = cursor.next()
			rowEnd, colEnd = rowStart+1, colStart+1
		}

		maxRow := len(grid.Rows)
		maxCol := len(grid.Columns)
		if maxRow == 0 {
			maxRow = rowEnd
		}
		if maxCol == 0 {
			maxCol = colEnd
		}
		rowStart = clampi(rowStart, 0, maxRow)
		rowEnd = clampi(rowEnd, rowStart, maxRow)
		if rowEnd == rowStart {
			rowEnd = rowStart + 1
		}
		colStart = clampi(colStart, 0, maxCol)
		colEnd = clampi(colEnd, colStart, maxCol)
		if colEnd == colStart {
			colEnd = colStart + 1
		}

		cellX := trackPos(colPos, colStart)
		cellY := trackPos(rowPos, rowStart)
		cellW := clampMin(trackPos(colPos, colEnd) - cellX - grid.ColumnGap)
		cellH := clampMin(trackPos(rowPos, rowEnd) - cellY - grid.RowGap)

		child.EnsureLayout()
		m := child.Layout.Margin
		cellX += m.Left
		cellY += m.Top
		cellW = clampMin(cellW - m.Horizontal())
		cellH = clampMin(cellH - m.Vertical())

		justify := grid.JustifyItems
		if item.JustifySelf != nil {
			justify = *item.JustifySelf
		}
		align := grid.AlignItems
		if item.AlignSelf != nil {
			align = *item.AlignSelf
		}

		w, x := placeInCell(e, child, true, cellW, cellX, justify)
		h, y := placeInCell(e, child, false, cellH, cellY, align)

		e.setChildBounds(child, x, y, w, h)
	}
}

// trackPos returns the position at index idx, clamped into range.
func trackPos(positions []float32, idx int) float32 {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(positions) {
		idx = len(positions) - 1
	}
	return positions[idx]
}

// placeInCell applies a justify_self/align_self policy within a grid
// cell (§4.2.5 last bullet): START shrinks to the child's measured size
// and aligns to the cell start, CENTER centers, END aligns to the cell
// end, STRETCH fills the cell.
func placeInCell(e *Engine, child *ir.Component, widthAxis bool, cellSize, cellStart float32, policy ir.Align) (size, pos float32) {
	measured := resolvedDim(e, child, widthAxis, cellSize)
	switch policy {
	case ir.AlignCenter:
		size = measured
		pos = cellStart + (cellSize-measured)/2
	case ir.AlignEnd:
		size = measured
		pos = cellStart + cellSize - measured
	case ir.AlignStretch:
		size = cellSize
		pos = cellStart
	default: // AlignStart
		size = measured
		pos = cellStart
	}
	return size, pos
}
