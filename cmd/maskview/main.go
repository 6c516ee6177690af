package main

import (
	"flag"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/assets"
	"github.com/milk9111/zombieslice/assets/procgen"
	"github.com/milk9111/zombieslice/geom"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 800
	screenHeight = 600
	texW         = 96
	texH         = 192
	drawScale    = 2.0
)

var (
	srcX = 80.0
	srcY = (screenHeight - texH*drawScale) / 2
	posX = 360.0
	negX = 580.0
)

// Game previews a cut: drag across the left texture, the two kept halves
// show on the right. The shader path is used when it compiles, otherwise
// the CPU mask.
type Game struct {
	src    *image.NRGBA
	tex    *ebiten.Image
	shader *ebiten.Shader
	cpu    bool

	line     geom.CutLine
	hasLine  bool
	dragFrom cp.Vector
	dragging bool

	halves   [2]*ebiten.Image
	outlines [2]*ebiten.Image
	dirty    bool
}

func NewGame(seed uint64, cpu bool) *Game {
	src := procgen.Zombie(texW, texH, seed)
	g := &Game{src: src, tex: ebiten.NewImageFromImage(src), cpu: cpu, dirty: true}
	if !cpu {
		sh, err := assets.LoadShader("slice_mask.kage")
		if err != nil {
			log.Printf("slice mask shader: %v, using cpu mask", err)
		}
		g.shader = sh
	}
	return g
}

func (g *Game) Update() error {
	mx, my := ebiten.CursorPosition()
	uv, inside := screenToUV(float64(mx), float64(my))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inside {
		g.dragFrom = uv
		g.dragging = true
	}
	if g.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
		line, err := geom.NewCutLine(clampUV(g.dragFrom), clampUV(uv))
		if err != nil {
			log.Printf("cut rejected: %v", err)
			return nil
		}
		g.line = line
		g.hasLine = true
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.cpu = !g.cpu
		g.dirty = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	if g.dirty {
		g.rebuild()
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(drawScale, drawScale)
	op.GeoM.Translate(srcX, srcY)
	screen.DrawImage(g.tex, op)

	if g.hasLine {
		a := uvToScreen(g.line.Start)
		b := uvToScreen(g.line.End)
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, colornames.Red, true)
	}
	if g.dragging {
		mx, my := ebiten.CursorPosition()
		a := uvToScreen(clampUV(g.dragFrom))
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(mx), float32(my), 1, colornames.Yellow, true)
	}

	for i, x := range []float64{posX, negX} {
		if g.halves[i] == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(drawScale, drawScale)
		op.GeoM.Translate(x, srcY)
		if g.outlines[i] != nil {
			screen.DrawImage(g.outlines[i], op)
		}
		screen.DrawImage(g.halves[i], op)
	}

	mode := "shader"
	if g.cpu || g.shader == nil {
		mode = "cpu"
	}
	ebitenutil.DebugPrint(screen, "drag across the zombie to cut  [C] toggle mask: "+mode)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// rebuild renders both kept halves of the current cut.
func (g *Game) rebuild() {
	if !g.hasLine {
		return
	}
	for i, side := range []int{1, -1} {
		cpuHalf := geom.MaskImage(g.src, g.line.Start, g.line.End, side)
		if g.cpu || g.shader == nil {
			g.halves[i] = ebiten.NewImageFromImage(cpuHalf)
		} else {
			g.halves[i] = g.shaderHalf(side)
		}
		g.outlines[i] = ebiten.NewImageFromImage(Outline(cpuHalf, 2, colornames.Red))
	}
}

func (g *Game) shaderHalf(side int) *ebiten.Image {
	off := ebiten.NewImage(texW, texH)
	off.DrawRectShader(texW, texH, g.shader, &ebiten.DrawRectShaderOptions{
		Images: [4]*ebiten.Image{g.tex},
		Uniforms: map[string]any{
			"LineStart":  []float32{float32(g.line.Start.X), float32(g.line.Start.Y)},
			"LineEnd":    []float32{float32(g.line.End.X), float32(g.line.End.Y)},
			"SideToKeep": float32(side),
		},
	})
	return off
}

// Outline returns an image holding outline pixels around the opaque areas of
// src, thickness pixels wide.
func Outline(src *image.NRGBA, thickness int, col color.Color) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	isOpaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return src.NRGBAAt(x+b.Min.X, y+b.Min.Y).A != 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isOpaque(x, y) {
				continue
			}
			found := false
			for yy := max(y-thickness, 0); yy <= min(y+thickness, h-1) && !found; yy++ {
				for xx := max(x-thickness, 0); xx <= min(x+thickness, w-1); xx++ {
					if isOpaque(xx, yy) {
						found = true
						break
					}
				}
			}
			if found {
				out.Set(x, y, col)
			}
		}
	}
	return out
}

// screenToUV maps a screen point over the source texture to UV space,
// origin bottom-left. inside is false when the point misses the texture.
func screenToUV(x, y float64) (uv cp.Vector, inside bool) {
	u := (x - srcX) / (texW * drawScale)
	v := 1 - (y-srcY)/(texH*drawScale)
	uv = cp.Vector{X: u, Y: v}
	return uv, geom.InUnitSquare(uv)
}

func uvToScreen(uv cp.Vector) cp.Vector {
	return cp.Vector{
		X: srcX + uv.X*texW*drawScale,
		Y: srcY + (1-uv.Y)*texH*drawScale,
	}
}

func clampUV(uv cp.Vector) cp.Vector {
	return cp.Vector{X: min(max(uv.X, 0), 1), Y: min(max(uv.Y, 0), 1)}
}

func main() {
	seed := flag.Uint64("seed", 1, "zombie palette seed")
	cpu := flag.Bool("cpu", false, "start with the cpu mask")
	flag.Parse()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Slice Mask Preview")
	if err := ebiten.RunGame(NewGame(*seed, *cpu)); err != nil {
		log.Fatal(err)
	}
}
