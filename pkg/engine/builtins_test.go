package engine

import (
	"strings"
	"testing"

	"github.com/chazu/cairn/pkg/rock"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(rock-cluster "a" :height 3)`,
			expect: `(rock_cluster "a" "__kw_height" 3)`,
		},
		{
			name:   "multiple keywords",
			input:  `(x :segments 8 :seed 1)`,
			expect: `(x "__kw_segments" 8 "__kw_seed" 1)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "kebab-case in string preserved",
			input:  `"rock-cluster"`,
			expect: `"rock-cluster"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:top-distortion-strength`,
			expect: `"__kw_top-distortion-strength"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// rock-cluster
// ---------------------------------------------------------------------------

func evalOK(t *testing.T, source string) []presetView {
	t.Helper()
	eng := NewEngine()
	presets, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	out := make([]presetView, len(presets))
	for i, p := range presets {
		out[i] = presetView{name: p.Name, seed: p.Seed, config: p.Config}
	}
	return out
}

func evalFails(t *testing.T, source, want string) {
	t.Helper()
	eng := NewEngine()
	presets, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if presets != nil {
		t.Fatalf("expected nil presets, got %v", presets)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if !strings.Contains(evalErrs[0].Message, want) {
		t.Errorf("message = %q, want containing %q", evalErrs[0].Message, want)
	}
}

type presetView struct {
	name   string
	seed   int64
	config rock.Config
}

func TestRockClusterDefaults(t *testing.T) {
	got := evalOK(t, `(rock-cluster "plain")`)
	if len(got) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(got))
	}
	if got[0].name != "plain" {
		t.Errorf("name = %q, want plain", got[0].name)
	}
	if got[0].seed != rock.DefaultSeed {
		t.Errorf("seed = %d, want %d", got[0].seed, rock.DefaultSeed)
	}
	if got[0].config != rock.DefaultConfig() {
		t.Errorf("config = %+v, want defaults", got[0].config)
	}
}

func TestRockClusterAllKeywords(t *testing.T) {
	source := `
;; every knob set
(rock-cluster "tor"
  :seed 99
  :segments 9
  :bottom-radius 2.5
  :top-radius 0.75
  :height 4
  :distortion-strength 1.5
  :top-distortion-strength 0.5
  :peak-height 3
  :additional-rock-count 6
  :additional-rock-spacing 2.25
  :rock-falloff 0.1
  :additional-rock-height-factor 0.8)
`
	got := evalOK(t, source)
	if len(got) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(got))
	}
	want := rock.Config{
		Segments:                   9,
		BottomRadius:               2.5,
		TopRadius:                  0.75,
		Height:                     4,
		DistortionStrength:         1.5,
		TopDistortionStrength:      0.5,
		PeakHeight:                 3,
		AdditionalRockCount:        6,
		AdditionalRockSpacing:      2.25,
		RockFalloff:                0.1,
		AdditionalRockHeightFactor: 0.8,
	}
	if got[0].config != want {
		t.Errorf("config = %+v\nwant %+v", got[0].config, want)
	}
	if got[0].seed != 99 {
		t.Errorf("seed = %d, want 99", got[0].seed)
	}
}

func TestRockClusterFrom(t *testing.T) {
	source := `
(def base (rock-cluster "base" :seed 5 :segments 10 :height 6))
(rock-cluster "taller" :from base :height 9)
(rock-cluster "again" :from (cluster "base"))
`
	got := evalOK(t, source)
	if len(got) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(got))
	}
	if got[1].name != "taller" || got[1].seed != 5 {
		t.Errorf("derived preset = %+v", got[1])
	}
	if got[1].config.Segments != 10 || got[1].config.Height != 9 {
		t.Errorf("derived config = %+v", got[1].config)
	}
	if got[2].config != got[0].config || got[2].seed != got[0].seed {
		t.Errorf("lookup copy = %+v, want %+v", got[2], got[0])
	}
}

func TestRockClusterVariables(t *testing.T) {
	source := `
(def h 3)
(rock-cluster "a" :height (* h 2) :additional-rock-count (+ 1 2))
`
	got := evalOK(t, source)
	if got[0].config.Height != 6 {
		t.Errorf("height = %v, want 6", got[0].config.Height)
	}
	if got[0].config.AdditionalRockCount != 3 {
		t.Errorf("count = %d, want 3", got[0].config.AdditionalRockCount)
	}
}

func TestRockClusterAnonymousNames(t *testing.T) {
	got := evalOK(t, "(rock-cluster)\n(rock-cluster :seed 2)")
	if len(got) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(got))
	}
	if got[0].name != "rock-1" || got[1].name != "rock-2" {
		t.Errorf("names = %q, %q", got[0].name, got[1].name)
	}
}

func TestRockClusterErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"unknown keyword", `(rock-cluster "a" :radius 2)`, "unknown keyword :radius"},
		{"duplicate name", "(rock-cluster \"a\")\n(rock-cluster \"a\")", "already defined"},
		{"out of range", `(rock-cluster "a" :segments 2)`, "INVALID_CONFIGURATION"},
		{"fractional int", `(rock-cluster "a" :segments 6.5)`, "whole number"},
		{"wrong type", `(rock-cluster "a" :height "tall")`, "expected number"},
		{"bad from", `(rock-cluster "a" :from 3)`, "expected rock cluster"},
		{"missing lookup", `(cluster "ghost")`, "no cluster named"},
		{"two names", `(rock-cluster "a" "b")`, "at most one name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evalFails(t, tt.source, tt.want)
		})
	}
}
