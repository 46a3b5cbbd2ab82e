package tablefix

import "strings"

// ColumnGrid is the ordered set of rune offsets at which every data row of a
// table block must carry a column-separator glyph. Offsets are strictly
// increasing because they are collected in a single left-to-right scan.
type ColumnGrid []int

// gridFromBorder extracts the column separator offsets from a border line.
func gridFromBorder(line []rune) ColumnGrid {
	var grid ColumnGrid
	for i, r := range line {
		if strings.ContainsRune(separatorGlyphs, r) {
			grid = append(grid, i)
		}
	}
	return grid
}

// pipeOffsets extracts the vertical-bar offsets from a data line.
func pipeOffsets(line []rune) []int {
	var offsets []int
	for i, r := range line {
		if strings.ContainsRune(verticalGlyphs, r) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// tableLine is one member line of a table block.
type tableLine struct {
	num    int // 1-based line number in the document
	text   string
	isData bool
}

// tableBlock is a maximal contiguous run of border and data lines sharing
// one column grid.
type tableBlock struct {
	lines []tableLine
	grid  ColumnGrid
}

// scanBlock collects a table block starting at lines[start], which must be a
// border line. It returns the block and the index of the first line after
// it. The grid is refined whenever a later border reveals at least as many
// columns: a fully-ruled separator row shows sub-columns a plain top or
// bottom border does not. On an exact tie in column count the first border
// seen wins.
func scanBlock(lines []string, start int) (tableBlock, int) {
	block := tableBlock{
		lines: []tableLine{{num: start + 1, text: lines[start]}},
		grid:  gridFromBorder([]rune(lines[start])),
	}
	i := start + 1
	for i < len(lines) {
		line := lines[i]
		switch {
		case IsBorderLine(line):
			block.lines = append(block.lines, tableLine{num: i + 1, text: line})
			if grid := gridFromBorder([]rune(line)); len(grid) > len(block.grid) {
				block.grid = grid
			}
		case IsDataLine(line):
			block.lines = append(block.lines, tableLine{num: i + 1, text: line, isData: true})
		default:
			return block, i
		}
		i++
	}
	return block, i
}
