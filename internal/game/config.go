package game

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Playfield in logical units. Rendering scales to fit the terminal.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Timing
const (
	TicksPerSecond = 60
	GameDuration   = 60 // Seconds from launch to reaching Earth
)

// Ship
const (
	ShipSpeed      = 5.0
	ShipRadius     = 16.0
	ShipSpriteSize = 42.0 // Width and height of the ship sprite
	ShipStartInset = 90.0 // Start distance above the bottom edge
	ShipEdgeMargin = 5.0
	ShipTiltMax    = 0.18 // Radians at full sideways input
	ShipTiltEase   = 0.15
	FireRate       = 10 // Minimum ticks between missiles
)

// Missile
const (
	MissileSpeed  = 10.0
	MissileRadius = 4.0
	MissileCutoff = -20.0 // Removed once above this y
)

// Asteroid
const (
	AsteroidMinRadius   = 12.0
	AsteroidMaxRadius   = 36.0
	AsteroidMinSpeed    = 1.5
	AsteroidMaxSpeed    = 3.5
	AsteroidDrift       = 0.5
	AsteroidSpin        = 0.02
	AsteroidExitMargin  = 20.0
	AsteroidShipHitSkew = 0.7 // Asteroid radius scale for ship collisions
)

// Scoring
const (
	ScoreSmallAsteroid  = 30 // radius < 20
	ScoreMediumAsteroid = 20 // radius < 30
	ScoreLargeAsteroid  = 10
	ScoreDodge          = 5
)

// Particles
const (
	MaxParticles     = 300
	ParticleFriction = 0.95
	ShipBurst        = 30
	WreckBurst       = 25
)

// Screen shake
const (
	ShakeHit       = 3.0
	ShakeCrash     = 12.0
	ShakeDecay     = 0.85
	ShakeThreshold = 0.5
)

// Background
const (
	StarCount      = 200
	EarthSpin      = 0.005 // Radians per tick
	EarthShowAfter = 0.4   // Progress before Earth appears
)

// Pause control region in logical coordinates.
const (
	PauseButtonX = FieldWidth - 55
	PauseButtonY = 10
	PauseButtonW = 45
	PauseButtonH = 35
)
