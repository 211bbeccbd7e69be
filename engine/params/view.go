package params

// AntiAliasing selects the post-process anti-aliasing pass.
type AntiAliasing int

const (
	AntiAliasingNone AntiAliasing = iota
	AntiAliasingFXAA
)

func (a AntiAliasing) String() string {
	if a == AntiAliasingFXAA {
		return "fxaa"
	}
	return "none"
}

// ToneMapping selects the tone mapping operator.
type ToneMapping int

const (
	ToneMappingLinear ToneMapping = iota
	ToneMappingACES
)

func (t ToneMapping) String() string {
	if t == ToneMappingACES {
		return "aces"
	}
	return "linear"
}

// Dithering selects the dithering applied after tone mapping.
type Dithering int

const (
	DitheringNone Dithering = iota
	DitheringTemporal
)

func (d Dithering) String() string {
	if d == DitheringTemporal {
		return "temporal"
	}
	return "none"
}

// ViewOptions are the per-frame view settings derived from the post-processing toggles.
type ViewOptions struct {
	AntiAliasing AntiAliasing
	ToneMapping  ToneMapping
	Dithering    Dithering
	SampleCount  uint32
}

// View derives the view options for the current toggles. Each toggle maps to exactly one
// option; the editor only offers dithering while tone mapping is on.
//
// Returns:
//   - ViewOptions: the derived view settings
func (p *Parameters) View() ViewOptions {
	v := ViewOptions{
		AntiAliasing: AntiAliasingNone,
		ToneMapping:  ToneMappingLinear,
		Dithering:    DitheringNone,
		SampleCount:  1,
	}
	if p.FXAA {
		v.AntiAliasing = AntiAliasingFXAA
	}
	if p.ToneMapping {
		v.ToneMapping = ToneMappingACES
	}
	if p.Dithering {
		v.Dithering = DitheringTemporal
	}
	if p.MSAA {
		v.SampleCount = 4
	}
	return v
}
