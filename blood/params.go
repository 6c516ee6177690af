package blood

// Params tunes particle spawn and settle behaviour. Spread values are
// fractions of π.
type Params struct {
	PoolSize int `yaml:"pool_size"`
	Variants int `yaml:"variants"`

	FloorSpread   float64 `yaml:"floor_spread"`
	FloorSpeedMin float64 `yaml:"floor_speed_min"`
	FloorSpeedMax float64 `yaml:"floor_speed_max"`

	WallSpread     float64 `yaml:"wall_spread"`
	WallSpeedMin   float64 `yaml:"wall_speed_min"`
	WallSpeedMax   float64 `yaml:"wall_speed_max"`
	WallDepthSpeed float64 `yaml:"wall_depth_speed"`
	WallGravity    float64 `yaml:"wall_gravity"`
	WallZ          float64 `yaml:"wall_z"`

	LifeMin   float64 `yaml:"life_min"`
	LifeMax   float64 `yaml:"life_max"`
	FadeBelow float64 `yaml:"fade_below"`

	Gravity         float64 `yaml:"gravity"`
	FloorY          float64 `yaml:"floor_y"`
	RotationSpeed   float64 `yaml:"rotation_speed"`
	AirborneOpacity float64 `yaml:"airborne_opacity"`
	RestOpacity     float64 `yaml:"rest_opacity"`

	PuddleDespawn float64 `yaml:"puddle_despawn"`
	WallDespawn   float64 `yaml:"wall_despawn"`
	WallFade      float64 `yaml:"wall_fade"`
}

func DefaultParams() Params {
	return Params{
		PoolSize: 50,
		Variants: 3,

		FloorSpread:   0.4,
		FloorSpeedMin: 0.03,
		FloorSpeedMax: 0.08,

		WallSpread:     0.125,
		WallSpeedMin:   0.02,
		WallSpeedMax:   0.05,
		WallDepthSpeed: 0.25,
		WallGravity:    0.001,
		WallZ:          -18,

		LifeMin:   1.0,
		LifeMax:   2.0,
		FadeBelow: 0.5,

		Gravity:         0.004,
		FloorY:          -1.6,
		RotationSpeed:   0.2,
		AirborneOpacity: 0.85,
		RestOpacity:     1.0,

		PuddleDespawn: 6,
		WallDespawn:   4.5,
		WallFade:      0.5,
	}
}
