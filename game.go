package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/zombieslice/assets"
	"github.com/milk9111/zombieslice/blood"
	"github.com/milk9111/zombieslice/common"
	"github.com/milk9111/zombieslice/ecs"
	"github.com/milk9111/zombieslice/ecs/render"
	"github.com/milk9111/zombieslice/ecs/system"
	"github.com/milk9111/zombieslice/gesture"
	"github.com/milk9111/zombieslice/mesh"
	"github.com/milk9111/zombieslice/slicer"
	"github.com/milk9111/zombieslice/spawn"
	"github.com/milk9111/zombieslice/tuning"
	"github.com/milk9111/zombieslice/view"
)

type Options struct {
	Debug      bool
	Seed       uint64
	TuningPath string
}

type Game struct {
	opts Options
	cfg  tuning.Config

	world     *ecs.World
	scheduler *ecs.Scheduler
	arena     *mesh.Arena
	atlas     *assets.Atlas
	round     *slicer.Round

	executor   *slicer.Executor
	controller *slicer.Controller
	pool       *blood.Pool
	director   *spawn.Director

	hits    *system.HitTestSystem
	spawner *system.SpawnSystem
	walker  *system.WalkerSystem
	settle  *system.SettleSystem

	renderer  *render.Renderer
	input     *Input
	hud       *HUD
	cutPlayer *audio.Player

	overlay   *ebitenui.UI
	overTimer float64
	restart   bool

	watcher *tuning.Watcher
}

func NewGame(cfg tuning.Config, opts Options) (*Game, error) {
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1))

	g := &Game{
		opts:  opts,
		cfg:   cfg,
		world: ecs.NewWorld(),
		arena: mesh.NewArena(),
		atlas: assets.NewAtlas(opts.Seed),
		round: slicer.NewRound(cfg.Round.Lives, cfg.Slice.Cooldown),
	}

	shape, err := g.arena.Quad(cfg.Zombie.Width, cfg.Zombie.Height)
	if err != nil {
		return nil, fmt.Errorf("game: zombie quad: %w", err)
	}

	cam := view.NewCamera(common.BaseWidth, common.BaseHeight, cfg.World.FOV)

	g.executor = slicer.NewExecutor(cfg.Slice, rng)
	g.executor.Debug = opts.Debug
	g.pool = blood.NewPool(cfg.Blood, rng)

	g.director = spawn.NewDirector(fallbackPlan(cfg), len(cfg.Zombie.Lanes), rng)
	g.director.Debug = opts.Debug
	if err := g.director.Load(cfg.Zombie.Script); err != nil {
		log.Printf("spawn: using fallback plan: %v", err)
	}

	g.hits = system.NewHitTestSystem(cam)
	g.spawner = system.NewSpawnSystem(system.SpawnConfig{
		Texture:  assets.ZombieTexture,
		Frames:   g.atlas.Frames(assets.ZombieTexture),
		Shape:    shape,
		Width:    cfg.Zombie.Width,
		Height:   cfg.Zombie.Height,
		SpawnZ:   cfg.World.SpawnZ,
		FloorY:   cfg.World.FloorY,
		Lanes:    cfg.Zombie.Lanes,
		MaxAlive: cfg.Zombie.MaxAlive,
	}, g.director, g.round)
	g.spawner.Debug = opts.Debug
	g.walker = system.NewWalkerSystem(cfg.World.NearZ)
	g.walker.Debug = opts.Debug
	g.settle = system.NewSettleSystem(cfg.Settle)
	g.scheduler = ecs.NewScheduler(g.spawner, g.walker, g.settle)

	g.controller = &slicer.Controller{
		World:    g.world,
		Round:    g.round,
		Resolver: gesture.NewResolver(cam.Aspect()),
		Executor: g.executor,
		HitTest:  g.hits.Func(),
		Tracker:  gesture.NewTracker(cfg.Gesture.MinMotion),
		Debug:    opts.Debug,
	}
	g.controller.SetMotionEnabled(false)
	g.input = NewInput(common.BaseWidth, common.BaseHeight)

	textures := render.NewRegistry()
	for _, name := range []string{assets.ZombieTexture, assets.BloodTexture} {
		textures.Register(name, g.atlas.Image(name), g.atlas.Source(name))
	}
	shader, err := assets.LoadShader("slice_mask")
	if err != nil {
		log.Printf("render: slice shader unavailable, masking on the CPU: %v", err)
	}
	g.renderer = render.NewRenderer(cam, g.arena, textures, shader)
	g.renderer.Scene = render.Scene{FloorY: cfg.World.FloorY, WallZ: cfg.World.WallZ, NearZ: cfg.World.NearZ, HalfWidth: 8}
	g.renderer.BloodTexture = assets.BloodTexture
	g.renderer.BloodFrames = g.atlas.Frames(assets.BloodTexture)

	g.hud = NewHUD()
	g.cutPlayer = assets.NewCutPlayer()

	if opts.Debug {
		g.startWatcher()
	}
	log.Printf("game: round=%s seed=%d lives=%d", g.round.ID, opts.Seed, g.round.Lives)
	return g, nil
}

func fallbackPlan(cfg tuning.Config) spawn.Plan {
	return spawn.Plan{
		Interval: cfg.Zombie.Interval,
		Speed:    cfg.Zombie.Speed,
		Scale:    cfg.Zombie.Scale,
	}
}

func (g *Game) startWatcher() {
	dirs := []string{"tuning", filepath.Join("spawn", "scripts")}
	if g.opts.TuningPath != "" {
		dirs = append(dirs, filepath.Dir(g.opts.TuningPath))
	}
	w, err := tuning.NewWatcher(dirs...)
	if err != nil {
		log.Printf("tuning: hot reload disabled: %v", err)
		return
	}
	g.watcher = w
}

// Close releases the watcher and the shape arena.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.arena.Close()
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	g.drainReloads()

	if g.round.Over() {
		g.overTimer += dt
		if g.overlay != nil {
			g.overlay.Update()
		}
		if g.overTimer >= g.cfg.Round.GameOverDelay && inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.restart = true
		}
		if g.restart {
			g.reset()
		}
		g.pool.Update(dt)
		return nil
	}

	g.world.SetDeltaTime(dt)
	g.round.Advance(dt)

	g.hits.Update(g.world)
	g.apply(g.input.Update(g.controller))

	g.scheduler.Update(g.world)
	g.handleEvents()
	g.pool.Update(dt)

	return nil
}

func (g *Game) apply(effects []slicer.Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case slicer.ScoreDelta:
			g.round.AddScore(e.Amount)
		case slicer.PlaySound:
			g.playSound(e.Name)
		case slicer.SpawnParticles:
			n := g.pool.Emit(e.Origin, e.Direction, e.Normal, e.Scale, e.Count)
			if g.opts.Debug && n < e.Count {
				log.Printf("blood: pool full, spawned %d of %d", n, e.Count)
			}
		case slicer.Retire:
			if g.opts.Debug {
				log.Printf("game: round=%s retired %v", g.round.ID, e.Entity)
			}
		}
	}
}

func (g *Game) playSound(name string) {
	if name != g.cfg.Slice.CutSound || g.cutPlayer == nil {
		return
	}
	if err := g.cutPlayer.Rewind(); err != nil {
		log.Printf("audio: rewind %s: %v", name, err)
		return
	}
	g.cutPlayer.Play()
}

func (g *Game) handleEvents() {
	for _, ev := range g.world.Events().Drain() {
		if ev.Type != system.EventZombieEscaped {
			continue
		}
		if !g.round.LoseLife() {
			continue
		}
		log.Printf("game: round=%s over, score=%d", g.round.ID, g.round.Score)
		g.overTimer = 0
		g.controller.SetMotionEnabled(false)
		g.overlay = NewGameOverUI(g)
	}
}

// reset clears the scene and starts a new round.
func (g *Game) reset() {
	for _, e := range g.world.Entities() {
		g.world.DestroyEntity(e)
	}
	g.world.Events().Drain()
	g.pool.Clear()
	g.round.Reset(g.cfg.Round.Lives)
	g.spawner.Reset()
	g.hits.Update(g.world)
	g.controller.SetMotionEnabled(g.input.HandMode)

	g.overlay = nil
	g.restart = false
	log.Printf("game: round=%s started", g.round.ID)
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("tuning: watch error: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if tuning.IsScriptFile(path) {
		if err := g.director.Reload(); err != nil {
			log.Printf("spawn: reload %s: %v", path, err)
			return
		}
		log.Printf("spawn: reloaded %s", path)
		return
	}

	cfg, err := loadTuning(g.opts.TuningPath)
	if err != nil {
		log.Printf("tuning: reload %s: %v", path, err)
		return
	}
	cfg.Round.Lives = g.cfg.Round.Lives
	g.applyTuning(cfg)
	log.Printf("tuning: reloaded %s", path)
}

// applyTuning pushes a reloaded config into the running systems. Extents
// and lanes stay as they were for zombies already walking.
func (g *Game) applyTuning(cfg tuning.Config) {
	g.cfg = cfg

	g.executor.Params = cfg.Slice
	g.round.SetCooldown(cfg.Slice.Cooldown)
	g.settle.Params = cfg.Settle
	g.walker.NearZ = cfg.World.NearZ
	g.controller.Tracker.MinMotion = cfg.Gesture.MinMotion

	if cfg.Blood.PoolSize != g.pool.Cap() {
		g.pool = blood.NewPool(cfg.Blood, nil)
	} else {
		g.pool.Params = cfg.Blood
	}

	g.director.Fallback = fallbackPlan(cfg)
	g.spawner.Config.SpawnZ = cfg.World.SpawnZ
	g.spawner.Config.FloorY = cfg.World.FloorY
	g.spawner.Config.MaxAlive = cfg.Zombie.MaxAlive
	if len(cfg.Zombie.Lanes) == g.director.Lanes {
		g.spawner.Config.Lanes = cfg.Zombie.Lanes
	}

	g.renderer.Scene.FloorY = cfg.World.FloorY
	g.renderer.Scene.WallZ = cfg.World.WallZ
	g.renderer.Scene.NearZ = cfg.World.NearZ
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world, g.pool)
	g.input.DrawTrail(screen, g.controller)
	g.hud.Draw(screen, g.round, g.input.HandMode)

	if g.opts.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  entities: %d  blood: %d/%d",
			ebiten.ActualFPS(), len(g.world.Entities()), g.pool.Live(), g.pool.Cap()), 10, common.BaseHeight-20)
	}

	if g.round.Over() && g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
