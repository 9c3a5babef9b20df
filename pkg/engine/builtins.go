package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/chazu/cairn/pkg/preset"
	"github.com/chazu/cairn/pkg/rock"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms cairn Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: rock-cluster -> rock_cluster
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Only when the hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpCluster wraps a preset so it can be bound to a variable and passed
// back in through :from.
type sexpCluster struct {
	p preset.Preset
}

func (c *sexpCluster) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rock-cluster %q :seed %d :additional-rock-count %d)",
		c.p.Name, c.p.Seed, c.p.Config.AdditionalRockCount)
}
func (c *sexpCluster) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt64 extracts a whole number; floats are accepted when integral.
func toInt64(s zygo.Sexp) (int64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) && !math.IsInf(v.Val, 0) {
			return int64(v.Val), nil
		}
		return 0, fmt.Errorf("expected whole number, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected whole number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toCluster extracts a preset from a sexpCluster.
func toCluster(s zygo.Sexp) (preset.Preset, error) {
	if c, ok := s.(*sexpCluster); ok {
		return c.p, nil
	}
	return preset.Preset{}, fmt.Errorf("expected rock cluster, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Cluster keywords
// ---------------------------------------------------------------------------

type setter func(p *preset.Preset, v zygo.Sexp) error

func floatField(field func(c *rock.Config) *float64) setter {
	return func(p *preset.Preset, v zygo.Sexp) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		*field(&p.Config) = f
		return nil
	}
}

func intField(field func(c *rock.Config) *int) setter {
	return func(p *preset.Preset, v zygo.Sexp) error {
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		*field(&p.Config) = int(n)
		return nil
	}
}

// clusterKeywords maps rock-cluster keywords onto preset fields.
var clusterKeywords = map[string]setter{
	"seed": func(p *preset.Preset, v zygo.Sexp) error {
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		p.Seed = n
		return nil
	},
	"segments":                      intField(func(c *rock.Config) *int { return &c.Segments }),
	"bottom-radius":                 floatField(func(c *rock.Config) *float64 { return &c.BottomRadius }),
	"top-radius":                    floatField(func(c *rock.Config) *float64 { return &c.TopRadius }),
	"height":                        floatField(func(c *rock.Config) *float64 { return &c.Height }),
	"distortion-strength":           floatField(func(c *rock.Config) *float64 { return &c.DistortionStrength }),
	"top-distortion-strength":       floatField(func(c *rock.Config) *float64 { return &c.TopDistortionStrength }),
	"peak-height":                   floatField(func(c *rock.Config) *float64 { return &c.PeakHeight }),
	"additional-rock-count":         intField(func(c *rock.Config) *int { return &c.AdditionalRockCount }),
	"additional-rock-spacing":       floatField(func(c *rock.Config) *float64 { return &c.AdditionalRockSpacing }),
	"rock-falloff":                  floatField(func(c *rock.Config) *float64 { return &c.RockFalloff }),
	"additional-rock-height-factor": floatField(func(c *rock.Config) *float64 { return &c.AdditionalRockHeightFactor }),
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector accumulates the clusters defined by one evaluation.
type collector struct {
	presets []preset.Preset
	byName  map[string]int
}

func newCollector() *collector {
	return &collector{presets: []preset.Preset{}, byName: make(map[string]int)}
}

func (c *collector) add(p preset.Preset) error {
	if _, dup := c.byName[p.Name]; dup {
		return fmt.Errorf("cluster %q already defined", p.Name)
	}
	c.byName[p.Name] = len(c.presets)
	c.presets = append(c.presets, p)
	return nil
}

// registerBuiltins installs the preset builtins into a zygomys environment.
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, col *collector) {

	// -----------------------------------------------------------------------
	// (rock-cluster "name" :from base :seed 7 :segments 6 :peak-height 4 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("rock_cluster", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := preset.Default(fmt.Sprintf("rock-%d", len(col.presets)+1))

		if len(pa.positional) > 1 {
			return zygo.SexpNull, fmt.Errorf("rock-cluster: expected at most one name, got %d positional arguments", len(pa.positional))
		}
		if v, ok := pa.kw["from"]; ok {
			base, err := toCluster(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rock-cluster: from: %w", err)
			}
			p.Seed = base.Seed
			p.Config = base.Config
		}
		if len(pa.positional) == 1 {
			n, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rock-cluster: name: %w", err)
			}
			p.Name = n
		}

		keys := make([]string, 0, len(pa.kw))
		for k := range pa.kw {
			if k != "from" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			set, ok := clusterKeywords[k]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("rock-cluster: unknown keyword :%s", k)
			}
			if err := set(&p, pa.kw[k]); err != nil {
				return zygo.SexpNull, fmt.Errorf("rock-cluster: %s: %w", k, err)
			}
		}

		if err := p.Config.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("rock-cluster %q: %w", p.Name, err)
		}
		if err := col.add(p); err != nil {
			return zygo.SexpNull, fmt.Errorf("rock-cluster: %w", err)
		}
		return &sexpCluster{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (cluster "name") looks up an earlier definition.
	// -----------------------------------------------------------------------
	env.AddFunction("cluster", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("cluster requires a name argument")
		}
		n, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cluster: name: %w", err)
		}
		i, ok := col.byName[n]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cluster: no cluster named %q", n)
		}
		return &sexpCluster{p: col.presets[i]}, nil
	})
}
