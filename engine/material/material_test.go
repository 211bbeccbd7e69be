package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/params"
)

func TestVariantFor(t *testing.T) {
	tests := []struct {
		model    params.MaterialModel
		blending params.Blending
		want     Variant
	}{
		{params.MaterialModelUnlit, params.BlendingOpaque, VariantUnlit},
		{params.MaterialModelUnlit, params.BlendingFade, VariantUnlit},
		{params.MaterialModelLit, params.BlendingOpaque, VariantLit},
		{params.MaterialModelLit, params.BlendingTransparent, VariantLitTransparent},
		{params.MaterialModelLit, params.BlendingFade, VariantLitFade},
		{params.MaterialModelSubsurface, params.BlendingTransparent, VariantSubsurface},
		{params.MaterialModelCloth, params.BlendingFade, VariantCloth},
	}
	for _, tt := range tests {
		if got := VariantFor(tt.model, tt.blending); got != tt.want {
			t.Errorf("VariantFor(%v, %v) = %v, want %v", tt.model, tt.blending, got, tt.want)
		}
	}
}

func TestVariantForPanicsOnInvalidModel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid model")
		}
	}()
	VariantFor(params.MaterialModel(42), params.BlendingOpaque)
}

func TestInstanceSetOneInstancePerVariant(t *testing.T) {
	set := NewInstanceSet()
	seen := make(map[uint32]bool)
	for _, v := range Variants {
		mi := set.Get(v)
		if mi == nil {
			t.Fatalf("no instance for %v", v)
		}
		if mi.Variant() != v {
			t.Errorf("Get(%v).Variant() = %v", v, mi.Variant())
		}
		if seen[mi.ID()] {
			t.Errorf("instance %d shared between variants", mi.ID())
		}
		seen[mi.ID()] = true

		block := mi.Params()
		if block.ShadingModel != uint32(v.Model()) || block.Blending != uint32(v.Blending()) {
			t.Errorf("%v block model/blending = %d/%d", v, block.ShadingModel, block.Blending)
		}
	}
	if set.Get(VariantGroundShadow) != nil {
		t.Error("ground shadow variant must not be part of the set")
	}
	if len(set.All()) != len(Variants) {
		t.Errorf("All() = %d instances, want %d", len(set.All()), len(Variants))
	}
}

func TestInstanceSetDestroyOnce(t *testing.T) {
	set := NewInstanceSet()
	if n := set.Destroy(); n != len(Variants) {
		t.Fatalf("first Destroy released %d, want %d", n, len(Variants))
	}
	if n := set.Destroy(); n != 0 {
		t.Fatalf("second Destroy released %d, want 0", n)
	}
	for _, mi := range set.All() {
		if !mi.Destroyed() {
			t.Errorf("%s not destroyed", mi.Name())
		}
	}
}

func TestDestroyedInstancePanicsOnUse(t *testing.T) {
	mi := NewInstance(WithVariant(VariantCloth))
	if !mi.Destroy() {
		t.Fatal("first Destroy returned false")
	}
	if mi.Destroy() {
		t.Fatal("second Destroy returned true")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing to a destroyed instance")
		}
	}()
	mi.SetScalar(params.FieldRoughness, 0.1)
}

func TestResolverScenarioUnlitToSubsurface(t *testing.T) {
	r := NewResolver(NewInstanceSet())
	p := params.New()
	p.MaterialModel = params.MaterialModelUnlit

	mi, written := r.Resolve(p)
	if mi.Variant() != VariantUnlit {
		t.Fatalf("variant = %v, want unlit", mi.Variant())
	}
	if written != params.NewFieldSet(params.FieldBaseColor) {
		t.Fatalf("unlit wrote %v, want {baseColor}", written)
	}

	p.MaterialModel = params.MaterialModelSubsurface
	mi, written = r.Resolve(p)
	if mi.Variant() != VariantSubsurface {
		t.Fatalf("variant = %v, want subsurface", mi.Variant())
	}
	for _, f := range []params.Field{params.FieldBaseColor, params.FieldRoughness,
		params.FieldThickness, params.FieldSubsurfacePower, params.FieldSubsurfaceColor} {
		if !written.Has(f) {
			t.Errorf("subsurface did not write %v", f)
		}
	}
	for _, f := range []params.Field{params.FieldClearCoat, params.FieldClearCoatRoughness,
		params.FieldAnisotropy, params.FieldSheenColor, params.FieldAlpha} {
		if written.Has(f) || mi.Written().Has(f) {
			t.Errorf("subsurface touched %v", f)
		}
	}

	// blended: alpha joins the set
	p.Blending = params.BlendingTransparent
	_, written = r.Resolve(p)
	if !written.Has(params.FieldAlpha) {
		t.Error("blended subsurface did not write alpha")
	}
}

func TestResolverWritesExactlyRequiredFields(t *testing.T) {
	for _, m := range params.MaterialModels {
		for _, b := range params.BlendingModes {
			r := NewResolver(NewInstanceSet())
			p := params.New()
			p.MaterialModel, p.Blending = m, b
			mi, written := r.Resolve(p)
			want := params.RequiredFields(m, b)
			if written != want {
				t.Errorf("%v/%v: returned %v, want %v", m, b, written, want)
			}
			if mi.Written() != want {
				t.Errorf("%v/%v: instance saw writes %v, want %v", m, b, mi.Written(), want)
			}
		}
	}
}

func TestResolverConvertsColorsAndPacksAlpha(t *testing.T) {
	r := NewResolver(NewInstanceSet())
	p := params.New()
	p.Blending = params.BlendingFade
	p.Alpha = 0.25
	p.Roughness = 0.3

	mi, _ := r.Resolve(p)
	block := mi.Params()

	lin := common.SRGBToLinear(0.69)
	want := [4]float32{lin, lin, lin, 0.25}
	if block.BaseColor != want {
		t.Errorf("base color = %v, want %v", block.BaseColor, want)
	}
	if block.Roughness != 0.3 {
		t.Errorf("roughness = %v, want 0.3", block.Roughness)
	}

	p.MaterialModel = params.MaterialModelCloth
	p.Blending = params.BlendingOpaque
	mi, _ = r.Resolve(p)
	if got := mi.Params().SheenColor[0]; got != common.SRGBToLinear(0.83) {
		t.Errorf("sheen red = %v, want linear 0.83", got)
	}
	if got := mi.Params().BaseColor[3]; got != 1 {
		t.Errorf("opaque cloth alpha = %v, want untouched 1", got)
	}
}

func TestResolverNeverCreatesInstances(t *testing.T) {
	set := NewInstanceSet()
	r := NewResolver(set)
	ids := make(map[uint32]bool)
	for _, mi := range set.All() {
		ids[mi.ID()] = true
	}
	p := params.New()
	for _, m := range params.MaterialModels {
		p.MaterialModel = m
		mi, _ := r.Resolve(p)
		if !ids[mi.ID()] {
			t.Errorf("%v resolved to an instance outside the set", m)
		}
	}
}

func TestGPUMaterialParamsMarshal(t *testing.T) {
	g := GPUMaterialParams{
		BaseColor:       [4]float32{0.1, 0.2, 0.3, 0.4},
		Roughness:       0.5,
		SubsurfacePower: 12,
		SheenColor:      [3]float32{0.7, 0.8, 0.9},
		ShadingModel:    uint32(params.MaterialModelCloth),
		Blending:        uint32(params.BlendingFade),
	}
	if g.Size() != GPUMaterialParamsSize {
		t.Fatalf("Size() = %d, want %d", g.Size(), GPUMaterialParamsSize)
	}
	buf := g.Marshal()
	if len(buf) != GPUMaterialParamsSize {
		t.Fatalf("len = %d, want %d", len(buf), GPUMaterialParamsSize)
	}

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	u := func(off int) uint32 { return binary.LittleEndian.Uint32(buf[off:]) }

	if f(12) != 0.4 || f(16) != 0.5 || f(44) != 12 || f(64) != 0.7 || f(72) != 0.9 {
		t.Errorf("float layout mismatch: % x", buf)
	}
	if u(80) != uint32(params.MaterialModelCloth) || u(84) != uint32(params.BlendingFade) {
		t.Errorf("enum layout mismatch: %d %d", u(80), u(84))
	}
}
