package assets

import (
	"embed"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/zombieslice/assets/procgen"
)

const (
	SampleRate = 44100

	ZombieTexture = "zombie"
	BloodTexture  = "blood"

	zombieFrameW = 96
	zombieFrameH = 192
	zombieFrames = 4
	bloodSize    = 32
)

//go:embed shaders/*.kage
var shadersFS embed.FS

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// AudioContext returns the shared audio context, creating it on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadShaderSource returns the Kage source of an embedded shader.
func LoadShaderSource(name string) ([]byte, error) {
	return shadersFS.ReadFile(cleanShaderPath(name))
}

// LoadShader compiles an embedded shader.
func LoadShader(name string) (*ebiten.Shader, error) {
	src, err := LoadShaderSource(name)
	if err != nil {
		return nil, err
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader %q: %w", name, err)
	}
	return sh, nil
}

// NewCutPlayer creates a player for the synthesized cut sound.
func NewCutPlayer() *audio.Player {
	return AudioContext().NewPlayerFromBytes(procgen.CutSound(SampleRate))
}

// Atlas holds the generated textures keyed by name. Zombie frames are laid out
// horizontally in one sheet so pieces can keep sampling their parent frame.
type Atlas struct {
	images  map[string]*ebiten.Image
	sources map[string]*image.NRGBA
	frames  map[string][]image.Rectangle
}

// NewAtlas draws every texture. seed varies the zombie palettes.
func NewAtlas(seed uint64) *Atlas {
	a := &Atlas{
		images:  map[string]*ebiten.Image{},
		sources: map[string]*image.NRGBA{},
		frames:  map[string][]image.Rectangle{},
	}

	sheet := image.NewNRGBA(image.Rect(0, 0, zombieFrameW*zombieFrames, zombieFrameH))
	for i := 0; i < zombieFrames; i++ {
		frame := image.Rect(i*zombieFrameW, 0, (i+1)*zombieFrameW, zombieFrameH)
		blit(sheet, procgen.Zombie(zombieFrameW, zombieFrameH, seed+uint64(i)), frame.Min)
		a.frames[ZombieTexture] = append(a.frames[ZombieTexture], frame)
	}
	a.images[ZombieTexture] = ebiten.NewImageFromImage(sheet)
	a.sources[ZombieTexture] = sheet

	const variants = 3
	blood := image.NewNRGBA(image.Rect(0, 0, bloodSize*variants, bloodSize))
	for i := 0; i < variants; i++ {
		frame := image.Rect(i*bloodSize, 0, (i+1)*bloodSize, bloodSize)
		blit(blood, procgen.BloodSplat(i, bloodSize), frame.Min)
		a.frames[BloodTexture] = append(a.frames[BloodTexture], frame)
	}
	a.images[BloodTexture] = ebiten.NewImageFromImage(blood)
	a.sources[BloodTexture] = blood

	return a
}

// Image returns the sheet for a texture key.
func (a *Atlas) Image(name string) *ebiten.Image {
	return a.images[name]
}

// Source returns the CPU copy of a sheet.
func (a *Atlas) Source(name string) image.Image {
	src, ok := a.sources[name]
	if !ok {
		return nil
	}
	return src
}

// Frames returns the frame rectangles of a texture key.
func (a *Atlas) Frames(name string) []image.Rectangle {
	return a.frames[name]
}

// Frame returns frame i of a texture, wrapping the index.
func (a *Atlas) Frame(name string, i int) image.Rectangle {
	frames := a.frames[name]
	if len(frames) == 0 {
		return image.Rectangle{}
	}
	i %= len(frames)
	if i < 0 {
		i += len(frames)
	}
	return frames[i]
}

func blit(dst *image.NRGBA, src *image.NRGBA, at image.Point) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y):src.PixOffset(b.Max.X, y)]
		copy(dst.Pix[dst.PixOffset(at.X, at.Y+y-b.Min.Y):], row)
	}
}

func cleanShaderPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		s = after
	}
	if !strings.HasPrefix(s, "shaders/") {
		s = "shaders/" + s
	}
	if filepath.Ext(s) == "" {
		s += ".kage"
	}
	return s
}
