package chart

import (
	"io/ioutil"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/anrid/population-charts/pkg/dom"
	"github.com/anrid/population-charts/pkg/stats"
)

func rateRow(year int, birth, death float64) stats.Row {
	r := stats.NewRow(year)
	r.BirthRate, r.DeathRate = birth, death
	return r
}

func migrationRow(year int, emigrants, immigrants float64) stats.Row {
	r := stats.NewRow(year)
	r.Emigrants, r.Immigrants = emigrants, immigrants
	return r
}

func bubbleRows() stats.Rows {
	return stats.Rows{
		rateRow(1960, 24.1, 9.8),
		rateRow(1975, 19.5, 10.4),
		rateRow(1992, 12.3, 11.9),
		rateRow(1998, 11.1, 12.6),
		rateRow(2021, 8.4, 15.7),
	}
}

func opacity(t *testing.T, n *dom.Node) string {
	t.Helper()
	v, ok := n.GetStyle("opacity")
	if !ok {
		t.Fatalf("no opacity on %s", n)
	}
	return v
}

func TestBubbleMarksWithinRange(t *testing.T) {
	cfg := DefaultConfig()
	c := RenderBubble(dom.New("div"), bubbleRows(), cfg)

	if c.X.Domain != [2]float64{8, 16} || c.Y.Domain != [2]float64{0, 26} {
		t.Fatalf("unexpected domains x=%v y=%v", c.X.Domain, c.Y.Domain)
	}
	if len(c.Marks) != 5 {
		t.Fatalf("expected 5 marks, got %d", len(c.Marks))
	}
	for _, m := range c.Marks {
		if !c.X.Contains(m.X) || !c.Y.Contains(m.Y) {
			t.Fatalf("mark outside plot: %s", spew.Sdump(m.X, m.Y, m.Row))
		}
		if m.X < 0 || m.X > cfg.Width()-20 || m.Y < 0 || m.Y > cfg.Height() {
			t.Fatalf("mark outside pixel range: (%v,%v)", m.X, m.Y)
		}
	}
}

func TestBubbleEntryTransition(t *testing.T) {
	cfg := DefaultConfig()
	c := RenderBubble(dom.New("div"), bubbleRows(), cfg)

	m := c.Marks[2]
	if m.Delay != 200*time.Millisecond {
		t.Fatalf("delay = %v want 200ms", m.Delay)
	}
	if m.Node.AttrFloat("cx") != 0 || m.Node.AttrFloat("cy") != cfg.Height() {
		t.Fatalf("bubble should start at the origin, got %s", m.Node)
	}
	anims := m.Node.SelectTag("animate")
	if len(anims) != 2 {
		t.Fatalf("expected cx and cy animations, got %d", len(anims))
	}
	begin, _ := anims[0].GetAttr("begin")
	dur, _ := anims[0].GetAttr("dur")
	to, _ := anims[0].GetAttr("to")
	if begin != "200ms" || dur != "2000ms" || to != dom.Num(m.X) {
		t.Fatalf("unexpected animation %s", anims[0])
	}
}

func TestBubbleDecadeClassesAndLegend(t *testing.T) {
	rows := append(bubbleRows(), rateRow(1955, 30, 12))
	c := RenderBubble(dom.New("div"), rows, DefaultConfig())

	first := c.Marks[0].Node
	if !first.HasClass("bubbles") || !first.HasClass("decade1960-1969") {
		t.Fatalf("unexpected classes %v", first.Classes())
	}
	if fill, _ := first.GetStyle("fill"); fill != "#E81212" {
		t.Fatalf("unexpected fill %q", fill)
	}

	outside := c.Marks[len(c.Marks)-1]
	if outside.HasDecade || len(outside.Node.Classes()) != 1 {
		t.Fatalf("1955 must stay unclassified, got %v", outside.Node.Classes())
	}

	if len(c.Legend) != 2*len(stats.Decades) {
		t.Fatalf("expected a dot and a label per decade, got %d", len(c.Legend))
	}
	if got := c.Legend[1].TextContent(); got != "1960-1969" {
		t.Fatalf("legend label = %q", got)
	}
}

func TestBubbleLegendHighlight(t *testing.T) {
	rows := append(bubbleRows(), rateRow(1955, 30, 12))
	c := RenderBubble(dom.New("div"), rows, DefaultConfig())

	var entry *dom.Node
	for _, n := range c.Legend {
		if n.Tag == "circle" && n.HasClass("decade1990-1999") {
			entry = n
		}
	}
	if entry == nil {
		t.Fatalf("no legend entry for decade1990-1999")
	}

	entry.Dispatch(dom.Event{Type: dom.PointerEnter})
	if active, ok := c.Highlight.Active(); !ok || active != "decade1990-1999" {
		t.Fatalf("highlight state = %q, %v", active, ok)
	}
	for _, m := range c.Marks {
		want := "0.05"
		if m.HasDecade && m.Decade.Class == "decade1990-1999" {
			want = "1"
		}
		if got := opacity(t, m.Node); got != want {
			t.Fatalf("year %d opacity %s want %s", m.Row.Year, got, want)
		}
	}
	if got := opacity(t, c.Marks[2].Node); got != "1" {
		t.Fatalf("1992 should be highlighted")
	}

	entry.Dispatch(dom.Event{Type: dom.PointerLeave})
	for _, m := range c.Marks {
		if got := opacity(t, m.Node); got != "1" {
			t.Fatalf("year %d opacity %s after leave", m.Row.Year, got)
		}
	}
	if _, ok := c.Highlight.Active(); ok {
		t.Fatalf("highlight should be cleared")
	}
}

func TestBubbleMarkHoverHighlightsItsDecade(t *testing.T) {
	c := RenderBubble(dom.New("div"), bubbleRows(), DefaultConfig())
	c.Marks[0].Node.Dispatch(dom.Event{Type: dom.PointerEnter})
	if got := opacity(t, c.Marks[1].Node); got != "0.05" {
		t.Fatalf("other decades should dim, got %s", got)
	}
	if got := opacity(t, c.Marks[0].Node); got != "1" {
		t.Fatalf("hovered decade should stay opaque, got %s", got)
	}
}

func TestBubbleFlatBirthRates(t *testing.T) {
	cfg := DefaultConfig()
	rows := stats.Rows{rateRow(1970, 0, 9), rateRow(1980, 0, 10)}
	c := RenderBubble(dom.New("div"), rows, cfg)

	if c.Y.Domain != [2]float64{0, 0} {
		t.Fatalf("flat y domain should stay as is, got %v", c.Y.Domain)
	}
	for _, m := range c.Marks {
		if math.IsNaN(m.X) || math.IsNaN(m.Y) || !c.Y.Contains(m.Y) {
			t.Fatalf("mark outside plot: %s", spew.Sdump(m.X, m.Y, m.Row))
		}
		if m.Y != cfg.Height()/2 {
			t.Fatalf("zero birth rate should sit mid-plot, got %v", m.Y)
		}
	}
}

func TestBubbleNaNDegrades(t *testing.T) {
	rows := stats.Rows{rateRow(1970, math.NaN(), 9)}
	c := RenderBubble(dom.New("div"), rows, DefaultConfig())
	if !math.IsNaN(c.Marks[0].Y) {
		t.Fatalf("NaN birth rate should give NaN geometry, got %v", c.Marks[0].Y)
	}
}

func TestMigrationLineVertices(t *testing.T) {
	rows := stats.Rows{migrationRow(2008, 10, 5), migrationRow(2009, 20, 15)}
	c := RenderMigration(dom.New("div"), rows, DefaultConfig())

	want := []Point{{X: c.X.Apply(2008), Y: c.Y.Apply(10)}, {X: c.X.Apply(2009), Y: c.Y.Apply(20)}}
	if len(c.Emigrants.Vertices) != 2 || c.Emigrants.Vertices[0] != want[0] || c.Emigrants.Vertices[1] != want[1] {
		t.Fatalf("unexpected vertices %s", spew.Sdump(c.Emigrants.Vertices))
	}
	if d, _ := c.Emigrants.Path.GetAttr("d"); d != "M0,270L650,0" {
		t.Fatalf("emigrants path = %q", d)
	}
	if d, _ := c.Immigrants.Path.GetAttr("d"); d != "M0,405L650,135" {
		t.Fatalf("immigrants path = %q", d)
	}
	if len(c.Emigrants.Dots) != 2 || len(c.Immigrants.Dots) != 2 {
		t.Fatalf("expected one dot per row per series")
	}
	if c.Immigrants.Dots[1].AttrFloat("cy") != 135 {
		t.Fatalf("immigrant dot misplaced: %s", c.Immigrants.Dots[1])
	}
}

func TestMigrationFiltersAndOrdersRows(t *testing.T) {
	rows := stats.Rows{
		migrationRow(2010, 30, 30),
		migrationRow(2006, 99999, 99999),
		migrationRow(2008, 10, 5),
	}
	c := RenderMigration(dom.New("div"), rows, DefaultConfig())
	if len(c.Rows) != 2 || c.Rows[0].Year != 2008 || c.Rows[1].Year != 2010 {
		t.Fatalf("unexpected rows %s", spew.Sdump(c.Rows))
	}
	if c.Y.Domain[1] != 30 {
		t.Fatalf("rows before 2008 must not affect the y domain, got %v", c.Y.Domain)
	}
	if rows[0].Year != 2010 {
		t.Fatalf("caller's rows were reordered")
	}
}

func TestMigrationRenderTwiceLeavesOneChart(t *testing.T) {
	container := dom.New("div").Attr("id", "migration")
	rows := stats.Rows{migrationRow(2008, 10, 5), migrationRow(2009, 20, 15)}

	RenderMigration(container, rows, DefaultConfig())
	RenderMigration(container, rows, DefaultConfig())

	if n := len(container.SelectTag("svg")); n != 1 {
		t.Fatalf("expected one svg, got %d", n)
	}
	if n := len(container.SelectAll("tooltip")); n != 1 {
		t.Fatalf("expected one tooltip, got %d", n)
	}
	if container.Children()[1] != container.SelectAll("tooltip")[0] {
		t.Fatalf("tooltip should follow the svg")
	}
}

func TestMigrationTooltip(t *testing.T) {
	rows := stats.Rows{migrationRow(2008, 10, 5), migrationRow(2009, 20, 15)}
	c := RenderMigration(dom.New("div"), rows, DefaultConfig())

	if c.Tooltip.Visible() || opacity(t, c.Tooltip.Panel) != "0" {
		t.Fatalf("tooltip should start hidden")
	}

	dot := c.Immigrants.Dots[0]
	dot.Dispatch(dom.Event{Type: dom.PointerEnter, PageX: 100, PageY: 200})
	dot.Dispatch(dom.Event{Type: dom.PointerMove, PageX: 100, PageY: 200})

	if !c.Tooltip.Visible() || opacity(t, c.Tooltip.Panel) != "1" {
		t.Fatalf("tooltip should be visible")
	}
	if got := c.Tooltip.Panel.TextContent(); got != "Year: 2008Emigrants: 10Immigrants: 5" {
		t.Fatalf("tooltip content = %q", got)
	}
	left, _ := c.Tooltip.Panel.GetStyle("left")
	top, _ := c.Tooltip.Panel.GetStyle("top")
	if left != "110px" || top != "185px" {
		t.Fatalf("tooltip at %s,%s", left, top)
	}
	if !strings.Contains(c.Tooltip.Panel.String(), "<strong>Year:</strong> 2008<br>") {
		t.Fatalf("unexpected markup %s", c.Tooltip.Panel)
	}

	dot.Dispatch(dom.Event{Type: dom.PointerLeave})
	if c.Tooltip.Visible() || opacity(t, c.Tooltip.Panel) != "0" {
		t.Fatalf("tooltip should hide on leave")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := ioutil.WriteFile(path, []byte(`{"outer_width": 1000, "bubble": {"dim_opacity": 0.2}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Width() != 750 || cfg.Bubble.DimOpacity != 0.2 || cfg.Bubble.Radius != 10 || cfg.Migration.FromYear != 2008 {
		t.Fatalf("unexpected config %s", spew.Sdump(cfg))
	}

	if err := ioutil.WriteFile(path, []byte(`{"outer_width": 100}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected an error for an empty plot area")
	}
}

func TestLinePathRounds(t *testing.T) {
	got := linePath([]Point{{1.23456, 2}, {math.NaN(), 3}})
	if got != "M1.235,2LNaN,3" {
		t.Fatalf("linePath = %q", got)
	}
}
