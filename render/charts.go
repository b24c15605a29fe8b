package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value float64
}

// Point is one (x, y) observation.
type Point struct {
	X float64
	Y float64
}

// Box is the sample drawn as one box. Boxes sharing a Category are drawn
// side by side, one per Hue.
type Box struct {
	Category string
	Hue      string
	Values   []float64
}

// Labels describes the text around a chart.
type Labels struct {
	Title string
	X     string
	Y     string
	// Rotation of the x tick labels in degrees.
	Rotation float64
}

var barColor = color.RGBA{R: 76, G: 114, B: 176, A: 255}

// CountPlot draws one bar per label with its count.
func (c Config) CountPlot(name string, labels Labels, bars []Bar) (string, error) {
	if labels.Y == "" {
		labels.Y = "count"
	}
	return c.BarPlot(name, labels, bars)
}

// BarPlot draws one bar per entry, in the given order.
func (c Config) BarPlot(name string, labels Labels, bars []Bar) (string, error) {
	if len(bars) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	p := c.newPlot(labels)
	values := make(plotter.Values, len(bars))
	names := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		names[i] = b.Label
	}

	chart, err := plotter.NewBarChart(values, c.barWidth(len(bars)))
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	chart.Color = barColor
	chart.LineStyle.Width = 0
	p.Add(chart)
	p.NominalX(names...)

	return c.save(name, p)
}

// Scatter draws each point as a dot.
func (c Config) Scatter(name string, labels Labels, points []Point) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	p := c.newPlot(labels)
	s, err := plotter.NewScatter(xys(points))
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	s.GlyphStyle.Color = barColor
	s.GlyphStyle.Radius = vg.Points(2)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	return c.save(name, p)
}

// Line joins the points in x order.
func (c Config) Line(name string, labels Labels, points []Point) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	p := c.newPlot(labels)
	l, err := plotter.NewLine(xys(sorted))
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	l.LineStyle.Color = barColor
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)

	return c.save(name, p)
}

// BoxPlot draws one box per category, split by hue when boxes carry one.
// Categories keep their first-seen order. Empty samples are skipped.
func (c Config) BoxPlot(name string, labels Labels, boxes []Box) (string, error) {
	var categories, hues []string
	catIndex := make(map[string]int)
	hueIndex := make(map[string]int)
	for _, b := range boxes {
		if len(b.Values) == 0 {
			continue
		}
		if _, ok := catIndex[b.Category]; !ok {
			catIndex[b.Category] = len(categories)
			categories = append(categories, b.Category)
		}
		if _, ok := hueIndex[b.Hue]; !ok {
			hueIndex[b.Hue] = len(hues)
			hues = append(hues, b.Hue)
		}
	}
	if len(categories) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	p := c.newPlot(labels)
	width := c.barWidth(len(categories)) / vg.Length(len(hues))
	legend := make(map[string]bool)
	for _, b := range boxes {
		if len(b.Values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(width, float64(catIndex[b.Category]), plotter.Values(b.Values))
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		h := hueIndex[b.Hue]
		box.Offset = (vg.Length(h) - vg.Length(len(hues)-1)/2) * width
		box.FillColor = plotutil.Color(h)
		p.Add(box)

		if b.Hue != "" && !legend[b.Hue] {
			legend[b.Hue] = true
			p.Legend.Add(b.Hue, swatch{color: box.FillColor})
		}
	}
	p.NominalX(categories...)
	p.Legend.Top = true

	return c.save(name, p)
}

func (c Config) newPlot(labels Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = labels.Title
	p.X.Label.Text = labels.X
	p.Y.Label.Text = labels.Y
	if labels.Rotation != 0 {
		p.X.Tick.Label.Rotation = labels.Rotation * math.Pi / 180
		p.X.Tick.Label.XAlign = draw.XRight
	}
	if c.Style == StyleWhiteGrid {
		p.Add(plotter.NewGrid())
	}
	return p
}

// barWidth spreads n categories over the figure width.
func (c Config) barWidth(n int) vg.Length {
	w := c.Width / vg.Length(n+1) * 0.8
	if widest := vg.Points(40); w > widest {
		return widest
	}
	if narrowest := vg.Points(1); w < narrowest {
		return narrowest
	}
	return w
}

// swatch is a filled legend entry.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}

// save writes p as <OutputDir>/<name>.png at the configured DPI.
func (c Config) save(name string, p *plot.Plot) (string, error) {
	path := filepath.Join(c.OutputDir, name+".png")

	canvas := vgimg.NewWith(vgimg.UseWH(c.Width, c.Height), vgimg.UseDPI(c.DPI))
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("%s: write png: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return path, nil
}

func xys(points []Point) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for i, pt := range points {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}
