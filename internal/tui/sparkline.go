package tui

// Samples keeps the most recent values of one dashboard series. The window
// follows the panel width, so older samples fall off as the terminal
// narrows.
type Samples struct {
	buf   []float64
	next  int
	count int
}

// NewSamples creates a series holding at most window values.
func NewSamples(window int) *Samples {
	return &Samples{buf: make([]float64, max(window, 1))}
}

// Add appends v, dropping the oldest value once the window is full.
func (s *Samples) Add(v float64) {
	s.buf[s.next] = v
	s.next = (s.next + 1) % len(s.buf)
	s.count = min(s.count+1, len(s.buf))
}

// Len is the number of stored values.
func (s *Samples) Len() int { return s.count }

// Window is the maximum number of stored values.
func (s *Samples) Window() int { return len(s.buf) }

// Latest returns the newest value, 0 when empty.
func (s *Samples) Latest() float64 {
	if s.count == 0 {
		return 0
	}
	return s.buf[(s.next+len(s.buf)-1)%len(s.buf)]
}

// Peak returns the largest stored value, 0 when empty.
func (s *Samples) Peak() float64 {
	vals := s.Values()
	if len(vals) == 0 {
		return 0
	}
	peak := vals[0]
	for _, v := range vals[1:] {
		peak = max(peak, v)
	}
	return peak
}

// Values returns the stored values oldest first.
func (s *Samples) Values() []float64 {
	if s.count == 0 {
		return nil
	}
	out := make([]float64, 0, s.count)
	first := s.next - s.count
	if first < 0 {
		first += len(s.buf)
	}
	for i := 0; i < s.count; i++ {
		out = append(out, s.buf[(first+i)%len(s.buf)])
	}
	return out
}

// SetWindow changes the window, keeping the newest values that still fit.
func (s *Samples) SetWindow(window int) {
	window = max(window, 1)
	if window == len(s.buf) {
		return
	}
	vals := s.Values()
	if len(vals) > window {
		vals = vals[len(vals)-window:]
	}
	*s = Samples{buf: make([]float64, window)}
	for _, v := range vals {
		s.Add(v)
	}
}

// Clear drops every value.
func (s *Samples) Clear() {
	s.next, s.count = 0, 0
}

// ScalePercent maps values onto 0..100 relative to their maximum. Call
// durations have no natural ceiling, so the chart scales to the slowest one.
func ScalePercent(values []float64) []float64 {
	var peak float64
	for _, v := range values {
		peak = max(peak, v)
	}
	out := make([]float64, len(values))
	if peak <= 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / peak * 100
	}
	return out
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}

var blockLevels = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline draws percentages (0..100) as one row of block glyphs.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	top := len(blockLevels) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		out[i] = blockLevels[int(clampPercent(v)/100*float64(top))]
	}
	return string(out)
}

// Dot bits of a braille cell, indexed by [column][row]. A cell is
// U+2800 plus the bits of its raised dots.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBlank = 0x2800

// RenderBrailleChart plots percentages (0..100) as a dot chart of rows
// lines and width cells. Each cell holds two samples side by side and four
// levels; the newest sample sits on the right edge.
func RenderBrailleChart(values []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(values) == 0 {
		return nil
	}
	levels := rows * 4
	slots := width * 2
	if len(values) > slots {
		values = values[len(values)-slots:]
	}
	pad := slots - len(values)

	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = make([]rune, width)
		for c := range cells[r] {
			cells[r][c] = brailleBlank
		}
	}
	for i, v := range values {
		x := pad + i
		// y counts down from the top dot row.
		y := levels - 1 - int(clampPercent(v)/100*float64(levels-1))
		cells[y/4][x/2] |= brailleBits[x%2][y%4]
	}

	lines := make([]string, rows)
	for r, row := range cells {
		lines[r] = string(row)
	}
	return lines
}
