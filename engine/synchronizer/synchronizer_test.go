package synchronizer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/entity"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/light"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/material"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderable"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
)

type fixture struct {
	params   *params.Parameters
	entities entity.Manager
	scene    scene.Scene
	registry renderable.Manager
	set      material.InstanceSet
	sun      light.Sun
}

func newFixture() *fixture {
	f := &fixture{
		params:   params.New(),
		entities: entity.NewManager(),
		scene:    scene.NewScene(),
		registry: renderable.NewManager(),
		set:      material.NewInstanceSet(),
	}
	f.sun = light.NewSun(f.entities.Create())
	return f
}

func (f *fixture) renderable(primitives int) entity.Entity {
	e := f.entities.Create()
	opts := make([]renderable.RenderableBuilderOption, 0, primitives)
	for i := 0; i < primitives; i++ {
		opts = append(opts, renderable.WithPrimitive(0, 3, nil))
	}
	f.registry.Create(e, opts...)
	return e
}

func (f *fixture) synchronizer(opts ...SynchronizerBuilderOption) Synchronizer {
	return NewSynchronizer(f.params, material.NewResolver(f.set), f.scene, f.registry, f.sun, opts...)
}

func TestLightAddedOnceWhenEnabled(t *testing.T) {
	f := newFixture()
	f.params.LightEnabled = false
	s := f.synchronizer()

	if stats := s.Sync(); stats.LightAdded || stats.LightRemoved {
		t.Fatalf("disabled light with no entity changed the scene: %+v", stats)
	}
	if s.HasDirectionalLight() || f.scene.Mutations() != 0 {
		t.Fatal("scene mutated while light disabled and absent")
	}

	f.params.LightEnabled = true
	stats := s.Sync()
	if !stats.LightAdded || !s.HasDirectionalLight() || !f.scene.Contains(f.sun.Entity()) {
		t.Fatalf("light not added: %+v", stats)
	}
	if f.scene.Mutations() != 1 {
		t.Fatalf("Mutations() = %d, want 1", f.scene.Mutations())
	}

	stats = s.Sync()
	if stats.LightAdded || stats.LightRemoved || f.scene.Mutations() != 1 {
		t.Fatalf("second Sync mutated the scene: %+v, mutations %d", stats, f.scene.Mutations())
	}
}

func TestLightReconciliationIdempotent(t *testing.T) {
	f := newFixture()
	s := f.synchronizer()

	toggles := []bool{true, true, false, false, true, false, false, true, true}
	var adds, removes int
	prev := false
	for i, enabled := range toggles {
		f.params.LightEnabled = enabled
		stats := s.Sync()
		if stats.LightAdded {
			adds++
		}
		if stats.LightRemoved {
			removes++
		}
		if s.HasDirectionalLight() != f.scene.Contains(f.sun.Entity()) {
			t.Fatalf("step %d: flag %v does not mirror membership", i, s.HasDirectionalLight())
		}
		if s.HasDirectionalLight() != enabled {
			t.Fatalf("step %d: presence %v, want %v", i, s.HasDirectionalLight(), enabled)
		}
		if (stats.LightAdded || stats.LightRemoved) != (enabled != prev) {
			t.Fatalf("step %d: unexpected mutation %+v", i, stats)
		}
		prev = enabled
	}
	if adds != 3 || removes != 2 {
		t.Errorf("adds/removes = %d/%d, want 3/2", adds, removes)
	}
	if f.scene.Mutations() != 5 {
		t.Errorf("Mutations() = %d, want 5", f.scene.Mutations())
	}
}

func TestWithLightPresentRemovesOnDisable(t *testing.T) {
	f := newFixture()
	f.scene.AddEntity(f.sun.Entity())
	s := f.synchronizer(WithLightPresent(true))

	s.Sync()
	if f.scene.Mutations() != 1 {
		t.Fatal("enabled light already present should not be re-added")
	}

	f.params.LightEnabled = false
	if stats := s.Sync(); !stats.LightRemoved || f.scene.Contains(f.sun.Entity()) {
		t.Fatalf("light not removed: %+v", stats)
	}
}

func TestBindsResolvedInstanceToEveryPrimitive(t *testing.T) {
	f := newFixture()
	root := f.renderable(0)
	a := f.renderable(2)
	b := f.renderable(3)
	s := f.synchronizer(WithRenderables(root, a, b))

	f.params.MaterialModel = params.MaterialModelCloth
	f.params.CastShadows = false
	stats := s.Sync()
	if stats.Bindings != 5 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v, want 5 bindings", stats)
	}

	want := f.set.Get(material.VariantCloth)
	for _, e := range []entity.Entity{a, b} {
		ri, _ := f.registry.Instance(e)
		for i := 0; i < f.registry.PrimitiveCount(ri); i++ {
			if f.registry.MaterialInstanceAt(ri, i) != want {
				t.Errorf("%v primitive %d bound to %v", e, i, f.registry.MaterialInstanceAt(ri, i))
			}
		}
		if f.registry.CastShadows(ri) {
			t.Errorf("%v still casts shadows", e)
		}
	}

	f.params.MaterialModel = params.MaterialModelLit
	f.params.Blending = params.BlendingFade
	f.params.CastShadows = true
	s.Sync()
	ri, _ := f.registry.Instance(b)
	if f.registry.MaterialInstanceAt(ri, 2) != f.set.Get(material.VariantLitFade) || !f.registry.CastShadows(ri) {
		t.Error("second Sync did not rebind to the lit fade instance")
	}
}

func TestSkipsEntitiesWithoutRenderable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	f := newFixture()
	pending := f.entities.Create()
	ready := f.renderable(1)
	s := f.synchronizer(WithRenderables(pending, ready), WithLogger(zap.New(core)))

	stats := s.Sync()
	if stats.Skipped != 1 || stats.Bindings != 1 {
		t.Fatalf("stats = %+v, want 1 skipped and 1 binding", stats)
	}
	if logs.FilterMessage("renderable not ready, skipping").Len() != 1 {
		t.Error("skip was not logged")
	}
}

func TestUpdatesSunAndIndirectLight(t *testing.T) {
	f := newFixture()
	ibl := light.NewIndirectLight("", 0)
	s := f.synchronizer(WithIndirectLight(ibl))

	f.params.LightEnabled = false
	f.params.IBLIntensity = 12345
	f.params.IBLRotation = math.Pi / 2
	f.params.LightIntensity = 50000
	f.params.LightDirection = [3]float32{0, -2, 0}
	f.params.SunHaloFalloff = 12
	s.Sync()

	if ibl.Intensity() != 12345 {
		t.Errorf("ibl intensity = %v, want 12345", ibl.Intensity())
	}
	if !ibl.Rotation().ApproxEqual(mgl32.Rotate3DY(math.Pi / 2)) {
		t.Errorf("ibl rotation = %v", ibl.Rotation())
	}
	if f.sun.Intensity() != 50000 || f.sun.Direction() != [3]float32{0, -1, 0} || f.sun.HaloFalloff() != 12 {
		t.Errorf("sun = %v lux, dir %v, falloff %v", f.sun.Intensity(), f.sun.Direction(), f.sun.HaloFalloff())
	}
	if want := common.SRGBToLinear3(f.params.LightColor); f.sun.Color() != want {
		t.Errorf("sun color = %v, want linear %v", f.sun.Color(), want)
	}

	s.SetIndirectLight(nil)
	f.params.IBLIntensity = 1
	s.Sync()
	if ibl.Intensity() != 12345 {
		t.Error("detached indirect light was updated")
	}
}

func TestSetRenderablesCopies(t *testing.T) {
	f := newFixture()
	s := f.synchronizer()
	list := []entity.Entity{f.renderable(1)}
	s.SetRenderables(list)
	list[0] = entity.Null
	if got := s.Renderables(); len(got) != 1 || got[0].IsNull() {
		t.Errorf("Renderables() = %v", got)
	}
}
