package game

import (
	"math/rand"
	"testing"
)

func TestAsteroidWrapsHorizontally(t *testing.T) {
	a := &Asteroid{X: -19, Y: 100, R: 20, VX: -2, Alive: true}
	a.Update(UpdateContext{})
	if a.X != FieldWidth+20 {
		t.Fatalf("x = %v, want wrapped to %v", a.X, FieldWidth+20)
	}

	a = &Asteroid{X: FieldWidth + 19, Y: 100, R: 20, VX: 2, Alive: true}
	a.Update(UpdateContext{})
	if a.X != -20 {
		t.Fatalf("x = %v, want wrapped to -20", a.X)
	}
}

func TestMissileLeavesTop(t *testing.T) {
	m := NewMissile(100, -5)
	if m.Update(UpdateContext{}) {
		t.Fatalf("missile at y=%v removed too early", m.Y)
	}
	if !m.Update(UpdateContext{}) {
		t.Fatalf("missile at y=%v should be removed", m.Y)
	}
}

func TestParticleDamping(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	p := NewParticle(r, 0, 0)
	vx, vy := p.VX, p.VY

	p.Update(UpdateContext{})
	if p.VX != vx*ParticleFriction || p.VY != vy*ParticleFriction {
		t.Fatalf("velocity not damped: %v,%v from %v,%v", p.VX, p.VY, vx, vy)
	}
	if p.Life >= 1 || p.Life <= 0 {
		t.Fatalf("life = %v after one tick", p.Life)
	}
}

func TestStarWrapsAboveTop(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	s := &Star{X: 10, Y: FieldHeight + 4, Speed: 2}
	s.Update(UpdateContext{StarSpeed: 1, Rand: r})
	if s.Y < -20 || s.Y >= -5 {
		t.Fatalf("y = %v, want respawned above the top", s.Y)
	}
}

func TestUpdateAllDropsRemoved(t *testing.T) {
	ms := []*Missile{NewMissile(0, 100), NewMissile(0, -15), NewMissile(0, 50)}
	ms = updateAll(ms, UpdateContext{})
	if len(ms) != 2 {
		t.Fatalf("missiles = %d, want 2", len(ms))
	}
	for _, m := range ms {
		if m.Offscreen() {
			t.Fatalf("offscreen missile kept at y=%v", m.Y)
		}
	}
}

func TestStateFinished(t *testing.T) {
	for st, want := range map[State]bool{
		StateStart:    false,
		StatePlaying:  false,
		StatePaused:   false,
		StateGameOver: true,
		StateWin:      true,
	} {
		if st.Finished() != want {
			t.Errorf("%v.Finished() = %v, want %v", st, st.Finished(), want)
		}
	}
}
