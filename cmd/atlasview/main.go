package main

import (
	"bytes"
	"flag"
	"image"
	_ "image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/zombieslice/assets"
	"golang.org/x/image/colornames"
)

const viewSize = 512

type sheet struct {
	name   string
	frames []*ebiten.Image
}

type demoGame struct {
	sheets      []sheet
	sheet       int
	current     int
	tick        int
	ticksPerFrm int
}

func (g *demoGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(g.sheets) > 0 {
		g.sheet = (g.sheet + 1) % len(g.sheets)
		g.current = 0
		g.tick = 0
	}
	if len(g.sheets) == 0 || len(g.sheets[g.sheet].frames) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current = (g.current + 1) % len(g.sheets[g.sheet].frames)
	}
	return nil
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	if len(g.sheets) == 0 {
		return
	}
	s := g.sheets[g.sheet]
	if len(s.frames) == 0 {
		return
	}
	frame := s.frames[g.current]
	fw := frame.Bounds().Dx()
	fh := frame.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(viewSize-fw)/2, float64(viewSize-fh)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)
	ebitenutil.DebugPrint(screen, s.name+"  [Tab] next sheet")
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

// frameRects splits a sheet into row-major frames of frameW x frameH. A count
// of zero or more than fit returns every whole frame.
func frameRects(bounds image.Rectangle, frameW, frameH, count int) []image.Rectangle {
	if frameW <= 0 || frameH <= 0 {
		return nil
	}
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	maxFrames := cols * rows
	if count <= 0 || count > maxFrames {
		count = maxFrames
	}
	out := make([]image.Rectangle, count)
	for i := 0; i < count; i++ {
		col := i % cols
		row := i / cols
		out[i] = image.Rect(col*frameW, row*frameH, col*frameW+frameW, row*frameH+frameH).Add(bounds.Min)
	}
	return out
}

func ticksPerFrame(fps int) int {
	if fps <= 0 {
		return 1
	}
	return max(60/fps, 1)
}

func subFrames(img *ebiten.Image, rects []image.Rectangle) []*ebiten.Image {
	frames := make([]*ebiten.Image, len(rects))
	for i, r := range rects {
		frames[i] = img.SubImage(r).(*ebiten.Image)
	}
	return frames
}

func loadSheet(path string, frameW, frameH, count int) (sheet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return sheet{}, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return sheet{}, err
	}
	eimg := ebiten.NewImageFromImage(img)
	return sheet{name: path, frames: subFrames(eimg, frameRects(img.Bounds(), frameW, frameH, count))}, nil
}

func main() {
	seed := flag.Uint64("seed", 1, "atlas seed")
	path := flag.String("sheet", "", "extra PNG sheet to preview")
	fw := flag.Int("fw", 128, "frame width of --sheet")
	fh := flag.Int("fh", 128, "frame height of --sheet")
	count := flag.Int("count", 0, "frame count of --sheet, 0 for all")
	fps := flag.Int("fps", 6, "playback rate")
	flag.Parse()

	atlas := assets.NewAtlas(*seed)
	g := &demoGame{ticksPerFrm: ticksPerFrame(*fps)}
	for _, name := range []string{assets.ZombieTexture, assets.BloodTexture} {
		g.sheets = append(g.sheets, sheet{name: name, frames: subFrames(atlas.Image(name), atlas.Frames(name))})
	}
	if *path != "" {
		s, err := loadSheet(*path, *fw, *fh, *count)
		if err != nil {
			log.Printf("failed to load %s: %v", *path, err)
		} else {
			g.sheets = append(g.sheets, s)
		}
	}

	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("Atlas Preview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
