package mesh

import (
	"errors"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View places the preview camera. The mesh is first scaled into the cube
// [-1, 1]^3 so positions are relative to that cube.
type View struct {
	Eye, LookAt, Up r3.Vec
	Near, Far       float64
	// Width and Height of the output in pixels.
	Width, Height int
	// Supersample renders at this multiple of the output size and
	// downsamples for antialiasing. Values below 1 mean 1.
	Supersample int
}

// DefaultView looks at the mesh from above and to the side.
func DefaultView() View {
	return View{
		Eye:    r3.Vec{X: 3, Y: -3, Z: 3},
		Up:     r3.Vec{Z: 1},
		Near:   1,
		Far:    10,
		Width:  960,
		Height: 540,
	}
}

// Preview renders the STL file at stlPath with phong shading and writes
// a PNG to pngPath.
func Preview(stlPath, pngPath string, view View) error {
	if view.Width <= 0 || view.Height <= 0 {
		return errors.New("mesh: preview size must be positive")
	}
	m, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	scale := max(view.Supersample, 1)
	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	m.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(m)
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return fauxgl.SavePNG(pngPath, img)
}
