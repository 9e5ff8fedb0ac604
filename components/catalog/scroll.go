package catalog

import "strconv"

const fixedHeaderClass = "fixed-header"

// ScrollMetrics are the measurements the portal page reports on grid scroll.
type ScrollMetrics struct {
	ScrollTop          float64 `json:"scrollTop"`
	FilterHeight       float64 `json:"filterHeight"`
	HeaderHeight       float64 `json:"headerHeight"`
	HeaderMarginTop    float64 `json:"headerMarginTop"`
	HeaderMarginBottom float64 `json:"headerMarginBottom"`
}

// ScrollLayout is the cosmetic result applied to the grid container.
type ScrollLayout struct {
	FixedHeader bool    `json:"fixedHeader"`
	PaddingTop  float64 `json:"paddingTop"`
}

// ComputeScrollLayout pins the grid header once the filter bar scrolled out.
func ComputeScrollLayout(m ScrollMetrics) ScrollLayout {
	if m.HeaderHeight > 0 && m.ScrollTop > m.FilterHeight {
		return ScrollLayout{
			FixedHeader: true,
			PaddingTop:  m.HeaderHeight + m.HeaderMarginBottom + m.HeaderMarginTop,
		}
	}
	return ScrollLayout{}
}

func applyScrollLayout(doc *Document, layout ScrollLayout) {
	grid, ok := doc.Lookup(SelectorGridContainer)
	if !ok {
		return
	}
	if layout.FixedHeader {
		grid.AddClass(fixedHeaderClass)
		grid.SetStyle("padding-top", strconv.FormatFloat(layout.PaddingTop, 'f', -1, 64)+"px")
		return
	}
	grid.RemoveClass(fixedHeaderClass)
	grid.SetStyle("padding-top", "0")
}
