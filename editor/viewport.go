package editor

// visibleRows returns the number of content rows the camera shows.
func (m *Model) visibleRows() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}

// viewportSlice maps the camera position to the visible document byte
// range. Typewriter padding rows shift document lines down, so the first
// visible document line is the camera row minus the padding.
func (m *Model) viewportSlice() Viewport {
	doc := m.session.State().Doc()
	pad := m.session.ScrollPadding()
	rows := m.visibleRows()
	lastLine := doc.LineCount() - 1

	first := clampInt(m.viewport.YOffset-pad, 0, lastLine)
	last := clampInt(m.viewport.YOffset+rows-1-pad, 0, lastLine)

	return Viewport{
		From:   doc.Line(first).From,
		To:     doc.Line(last).To,
		Width:  m.viewport.Width,
		Height: rows,
	}
}

// refreshContent publishes the visible slice to the session and re-renders.
// Publishing can change the scroll padding, which moves the slice; a second
// publish settles it.
func (m *Model) refreshContent() {
	m.followCursorX()
	slice := m.viewportSlice()
	m.session.SetViewport(slice)
	if again := m.viewportSlice(); again != slice {
		m.session.SetViewport(again)
	}
	m.viewport.SetContent(m.renderContent())
}

// applyScrollRequests moves the camera for every queued request and reports
// whether it moved. Center requests pin the target line to the middle row;
// plain requests scroll the minimum needed to reveal it.
func (m *Model) applyScrollRequests() bool {
	reqs := m.session.takeScrollRequests()
	if len(reqs) == 0 {
		return false
	}
	doc := m.session.State().Doc()
	pad := m.session.ScrollPadding()
	rows := m.visibleRows()
	moved := false
	for _, r := range reqs {
		row := doc.LineAt(doc.ClampOffset(r.Offset)).Number + pad
		before := m.viewport.YOffset
		switch {
		case r.Center:
			m.viewport.SetYOffset(row - rows/2)
		case row < m.viewport.YOffset:
			m.viewport.SetYOffset(row)
		case rows > 0 && row >= m.viewport.YOffset+rows:
			m.viewport.SetYOffset(row - rows + 1)
		}
		if m.viewport.YOffset != before {
			moved = true
		}
	}
	return moved
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
