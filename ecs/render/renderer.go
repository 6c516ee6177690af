// Package render draws the scene: textured quads projected through the
// perspective camera, masked per piece by the slice shader.
package render

import (
	"image"
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/zombieslice/blood"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/component"
	"github.com/milk9111/zombieslice/geom"
	"github.com/milk9111/zombieslice/mesh"
	"github.com/milk9111/zombieslice/view"
)

const (
	bobHeight    = 0.05
	particleSize = 0.18
)

// Scene is the fixed geometry around the walkers.
type Scene struct {
	FloorY float64
	WallZ  float64
	NearZ  float64
	// HalfWidth is how far the floor and wall extend either side of x=0.
	HalfWidth float64
}

type Renderer struct {
	Camera   view.Camera
	Arena    *mesh.Arena
	Textures *Registry
	// Shader is the slice mask shader. When nil, pieces are masked on the
	// CPU from the registry's source images.
	Shader *ebiten.Shader
	Scene  Scene
	// BloodTexture is the registry key of the particle sheet.
	BloodTexture string
	BloodFrames  []image.Rectangle

	white    *ebiten.Image
	fallback map[ecs.Entity]*ebiten.Image
	verts    []ebiten.Vertex
}

func NewRenderer(cam view.Camera, arena *mesh.Arena, textures *Registry, shader *ebiten.Shader) *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		Camera:   cam,
		Arena:    arena,
		Textures: textures,
		Shader:   shader,
		white:    white,
		fallback: map[ecs.Entity]*ebiten.Image{},
		verts:    make([]ebiten.Vertex, 4),
	}
}

var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

type drawItem struct {
	e ecs.Entity
	z float64
}

// Draw renders the backdrop, settled blood, every sprite far to near, then
// airborne blood on top.
func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, pool *blood.Pool) {
	if r == nil || screen == nil {
		return
	}

	r.drawBackdrop(screen)

	if pool != nil {
		pool.Each(func(p *blood.Particle) {
			if p.Phase != blood.PhaseAirborne {
				r.drawParticle(screen, p)
			}
		})
	}

	if w != nil {
		ents := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
		items := make([]drawItem, 0, len(ents))
		for _, e := range ents {
			t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			items = append(items, drawItem{e: e, z: t.Z})
		}
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].z != items[j].z {
				return items[i].z < items[j].z
			}
			return uint64(items[i].e) < uint64(items[j].e)
		})
		for _, it := range items {
			r.drawSprite(screen, w, it.e)
		}
		r.pruneFallback(w)
	}

	if pool != nil {
		pool.Each(func(p *blood.Particle) {
			if p.Phase == blood.PhaseAirborne {
				r.drawParticle(screen, p)
			}
		})
	}
}

func (r *Renderer) drawBackdrop(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1a, 0x1c, 0x24, 0xff})

	s := r.Scene
	hw := s.HalfWidth
	if hw <= 0 {
		hw = 8
	}
	wallTop := s.FloorY + 12
	wall := [4]geom.Vec3{
		{X: -hw, Y: s.FloorY, Z: s.WallZ},
		{X: hw, Y: s.FloorY, Z: s.WallZ},
		{X: hw, Y: wallTop, Z: s.WallZ},
		{X: -hw, Y: wallTop, Z: s.WallZ},
	}
	r.fillQuad(screen, wall, color.RGBA{0x2e, 0x2a, 0x33, 0xff})

	floor := [4]geom.Vec3{
		{X: -hw, Y: s.FloorY, Z: s.NearZ + 2},
		{X: hw, Y: s.FloorY, Z: s.NearZ + 2},
		{X: hw, Y: s.FloorY, Z: s.WallZ},
		{X: -hw, Y: s.FloorY, Z: s.WallZ},
	}
	r.fillQuad(screen, floor, color.RGBA{0x3b, 0x3f, 0x2f, 0xff})
}

func (r *Renderer) fillQuad(screen *ebiten.Image, corners [4]geom.Vec3, c color.RGBA) {
	if !r.project(corners) {
		return
	}
	for i := range r.verts {
		r.verts[i].SrcX, r.verts[i].SrcY = 1, 1
		r.verts[i].ColorR = float32(c.R) / 0xff
		r.verts[i].ColorG = float32(c.G) / 0xff
		r.verts[i].ColorB = float32(c.B) / 0xff
		r.verts[i].ColorA = float32(c.A) / 0xff
	}
	screen.DrawTriangles(r.verts, quadIndices, r.white, nil)
}

// project fills the destination positions of r.verts. It fails when any
// corner is behind the eye.
func (r *Renderer) project(corners [4]geom.Vec3) bool {
	for i, p := range corners {
		s, _, ok := r.Camera.Project(p)
		if !ok {
			return false
		}
		r.verts[i] = ebiten.Vertex{DstX: float32(s.X), DstY: float32(s.Y)}
	}
	return true
}

func (r *Renderer) drawSprite(screen *ebiten.Image, w *ecs.World, e ecs.Entity) {
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	if t == nil || s == nil || s.Opacity <= 0 {
		return
	}
	shape, ok := r.Arena.Shape(s.Shape)
	if !ok {
		return
	}
	img := r.Textures.Image(s.Texture)
	if img == nil {
		return
	}

	scale := t.Scale
	if scale <= 0 {
		scale = 1
	}
	y := t.Y
	if walker, ok := ecs.Get(w, e, component.WalkerComponent.Kind()); ok {
		y += math.Abs(math.Sin(walker.Bob)) * bobHeight * scale
	}
	spin := cp.ForAngle(t.Rotation)

	var corners [4]geom.Vec3
	for i, v := range shape.Vertices {
		p := cp.Vector{X: v.X * scale, Y: v.Y * scale}.Rotate(spin)
		corners[i] = geom.Vec3{X: t.X + p.X, Y: y + p.Y, Z: t.Z}
	}
	if !r.project(corners) {
		return
	}

	frame := s.Frame
	if frame.Empty() {
		frame = img.Bounds()
	}
	mask, masked := ecs.Get(w, e, component.SliceMaskComponent.Kind())
	if !masked {
		mask = &component.SliceMask{}
	}

	src := img.SubImage(frame).(*ebiten.Image)
	origin := frame.Min
	if mask.SideToKeep != 0 && r.Shader == nil {
		cpu, ok := r.maskedFallback(e, s.Texture, frame, mask)
		if !ok {
			return
		}
		src = cpu
		origin = image.Point{}
	}

	alpha := float32(s.Opacity)
	dx, dy := float32(frame.Dx()), float32(frame.Dy())
	for i, v := range shape.Vertices {
		r.verts[i].SrcX = float32(origin.X) + float32(v.U)*dx
		r.verts[i].SrcY = float32(origin.Y) + (1-float32(v.V))*dy
		r.verts[i].ColorR, r.verts[i].ColorG, r.verts[i].ColorB, r.verts[i].ColorA = alpha, alpha, alpha, alpha
	}

	if r.Shader == nil {
		screen.DrawTriangles(r.verts, quadIndices, src, nil)
		return
	}

	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0] = src
	op.Uniforms = map[string]any{
		"LineStart":  []float32{float32(mask.LineStart.X), float32(mask.LineStart.Y)},
		"LineEnd":    []float32{float32(mask.LineEnd.X), float32(mask.LineEnd.Y)},
		"SideToKeep": float32(mask.SideToKeep),
	}
	screen.DrawTrianglesShader(r.verts, quadIndices, r.Shader, op)
}

// maskedFallback returns a cached CPU-masked copy of a piece's frame.
func (r *Renderer) maskedFallback(e ecs.Entity, texture string, frame image.Rectangle, mask *component.SliceMask) (*ebiten.Image, bool) {
	if img, ok := r.fallback[e]; ok {
		return img, true
	}
	src, ok := r.Textures.Source(texture)
	if !ok {
		return nil, false
	}
	sub, ok := src.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		log.Printf("render: texture %q cannot be cropped for the CPU mask", texture)
		return nil, false
	}
	out := ebiten.NewImageFromImage(geom.MaskImage(sub.SubImage(frame), mask.LineStart, mask.LineEnd, mask.SideToKeep))
	r.fallback[e] = out
	return out, true
}

func (r *Renderer) pruneFallback(w *ecs.World) {
	for e, img := range r.fallback {
		if !w.IsAlive(e) {
			img.Deallocate()
			delete(r.fallback, e)
		}
	}
}

func (r *Renderer) drawParticle(screen *ebiten.Image, p *blood.Particle) {
	img := r.Textures.Image(r.BloodTexture)
	if img == nil || len(r.BloodFrames) == 0 || p.Opacity <= 0 {
		return
	}
	frame := r.BloodFrames[p.Variant%len(r.BloodFrames)]

	h := particleSize * p.Scale / 2
	var corners [4]geom.Vec3
	switch p.Phase {
	case blood.PhasePuddle:
		// lies flat on the floor, so it is stretched along depth
		corners = [4]geom.Vec3{
			{X: p.Position.X - h*2, Y: p.Position.Y, Z: p.Position.Z + h},
			{X: p.Position.X + h*2, Y: p.Position.Y, Z: p.Position.Z + h},
			{X: p.Position.X + h*2, Y: p.Position.Y, Z: p.Position.Z - h},
			{X: p.Position.X - h*2, Y: p.Position.Y, Z: p.Position.Z - h},
		}
	default:
		spin := cp.ForAngle(p.Rotation)
		local := [4]cp.Vector{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
		for i, l := range local {
			q := l.Rotate(spin)
			corners[i] = geom.Vec3{X: p.Position.X + q.X, Y: p.Position.Y + q.Y, Z: p.Position.Z}
		}
	}
	if !r.project(corners) {
		return
	}

	a := float32(p.Opacity)
	src := [4][2]int{{frame.Min.X, frame.Max.Y}, {frame.Max.X, frame.Max.Y}, {frame.Max.X, frame.Min.Y}, {frame.Min.X, frame.Min.Y}}
	for i := range r.verts {
		r.verts[i].SrcX, r.verts[i].SrcY = float32(src[i][0]), float32(src[i][1])
		r.verts[i].ColorR, r.verts[i].ColorG, r.verts[i].ColorB, r.verts[i].ColorA = a, a, a, a
	}
	screen.DrawTriangles(r.verts, quadIndices, img, nil)
}
