package planar

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ByteArena/box2d"
	"github.com/fogleman/gg"
)

const (
	ViewportW = 600
	ViewportH = 400

	// Scale is the number of pixels per world unit
	Scale = 80.0
)

var (
	skyShade     = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	groundShade  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	targetColour = color.RGBA{R: 255, G: 166, B: 0, A: 255}
	bodyColour   = color.RGBA{R: 128, G: 102, B: 230, A: 255}
	rootColour   = color.RGBA{R: 77, G: 77, B: 128, A: 255}
)

// worldToPixel converts world coordinates to pixel coordinates of a
// viewport centred horizontally on centreX
func worldToPixel(x, y, centreX float64) (float64, float64) {
	px := (x-centreX)*Scale + ViewportW/2
	py := ViewportH - (y*Scale + ViewportH/8)
	return px, py
}

// Image draws the current state of the world. The viewport follows the
// first segment of the skeleton.
func (w *World) Image() image.Image {
	dc := gg.NewContext(ViewportW, ViewportH)
	dc.SetColor(skyShade)
	dc.Clear()

	centreX := 0.0
	if len(w.order) > 0 {
		centreX = w.bodies[w.order[0]].body.GetPosition().X
	}

	// Ground
	x1, y1 := worldToPixel(centreX-ViewportW/Scale, 0, centreX)
	x2, y2 := worldToPixel(centreX+ViewportW/Scale, 0, centreX)
	dc.DrawLine(x1, y1, x2, y2)
	dc.SetColor(groundShade)
	dc.SetLineWidth(3.0)
	dc.Stroke()

	drawBody(dc, w.target.body, targetColour, centreX)
	for i, name := range w.order {
		c := bodyColour
		if i == 0 {
			c = rootColour
		}
		drawBody(dc, w.bodies[name].body, c, centreX)
	}

	return dc.Image()
}

// Render saves an image of the current state of the world as a PNG
func (w *World) Render(path string) error {
	dc := gg.NewContextForImage(w.Image())
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: %v", err)
	}
	return nil
}

func drawBody(dc *gg.Context, b *box2d.B2Body, c color.Color, centreX float64) {
	fix := b.GetFixtureList()
	for fix != nil {
		shape, ok := fix.M_shape.(*box2d.B2PolygonShape)
		if !ok {
			fix = fix.M_next
			continue
		}

		path := make([][2]float64, 0, shape.M_count)
		for i, vertex := range shape.M_vertices {
			if i >= shape.M_count {
				break
			}
			vertex = box2d.B2TransformVec2Mul(fix.M_body.M_xf, vertex)
			px, py := worldToPixel(vertex.X, vertex.Y, centreX)
			path = append(path, [2]float64{px, py})
		}

		dc.ClearPath()
		for _, point := range path {
			dc.LineTo(point[0], point[1])
		}
		if len(path) > 0 {
			dc.LineTo(path[0][0], path[0][1])
		}
		dc.SetColor(c)
		if fix.IsSensor() {
			dc.SetLineWidth(2.0)
			dc.Stroke()
		} else {
			dc.Fill()
		}
		fix = fix.M_next
	}
}
