package route

import (
	"strings"
	"sync"
)

// WildcardKey is the name a wildcard segment binds its value under.
const WildcardKey = "*"

// A Kind identifies how a Segment compares against a path segment.
type Kind int

const (
	Literal Kind = iota
	Dynamic
	Wildcard
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Dynamic:
		return "dynamic"
	case Wildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// A Segment is one compiled piece of a Pattern.
// Value holds the literal text or the parameter name; it is WildcardKey for a Wildcard.
type Segment struct {
	Kind  Kind
	Value string
}

// A Pattern is the compiled, immutable form of a route path.
type Pattern struct {
	source   string
	segments []Segment
}

// Compile splits pattern on "/" into literal, ":name" and "*" segments.
//
// Compile fails with an *InvalidPatternError when a wildcard is not the final segment
// or a parameter name is empty or repeated.
func Compile(pattern string) (Pattern, error) {
	p := Pattern{source: pattern}
	seen := make(map[string]bool)
	pieces := splitPath(pattern)
	for i, piece := range pieces {
		var seg Segment
		switch {
		case piece == WildcardKey:
			if i != len(pieces)-1 {
				return Pattern{}, &InvalidPatternError{Pattern: pattern, Reason: "wildcard must be the final segment"}
			}
			seg = Segment{Kind: Wildcard, Value: WildcardKey}
		case strings.HasPrefix(piece, "*"):
			return Pattern{}, &InvalidPatternError{Pattern: pattern, Reason: "named wildcards are not supported: " + piece}
		case strings.HasPrefix(piece, ":"):
			name := piece[1:]
			if name == "" {
				return Pattern{}, &InvalidPatternError{Pattern: pattern, Reason: "empty parameter name"}
			}
			if strings.ContainsAny(name, ":*") {
				return Pattern{}, &InvalidPatternError{Pattern: pattern, Reason: "malformed parameter name: " + name}
			}
			seg = Segment{Kind: Dynamic, Value: name}
		default:
			seg = Segment{Kind: Literal, Value: piece}
		}

		if seg.Kind != Literal {
			if seen[seg.Value] {
				return Pattern{}, &InvalidPatternError{Pattern: pattern, Reason: "duplicate parameter name: " + seg.Value}
			}
			seen[seg.Value] = true
		}

		p.segments = append(p.segments, seg)
	}

	return p, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source pattern.
func (p Pattern) String() string { return p.source }

// Segments returns a copy of the compiled segments.
func (p Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// ParamNames lists the names the pattern binds, in order of appearance.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.Kind != Literal {
			names = append(names, seg.Value)
		}
	}
	return names
}

// IsCatchAll reports whether the pattern is a lone wildcard.
func (p Pattern) IsCatchAll() bool {
	return len(p.segments) == 1 && p.segments[0].Kind == Wildcard
}

// match compares the pattern against the leading raw path segments,
// returning the bound params and the segments left over.
func (p Pattern) match(segs []string) (Params, []string, bool) {
	var params Params
	for i, seg := range p.segments {
		if seg.Kind == Wildcard {
			val, err := unescape(strings.Join(segs[i:], "/"))
			if err != nil {
				return nil, nil, false
			}
			return append(params, Param{Key: WildcardKey, Value: val}), nil, true
		}

		if i >= len(segs) {
			return nil, nil, false
		}

		val, err := unescape(segs[i])
		if err != nil {
			return nil, nil, false
		}

		switch seg.Kind {
		case Literal:
			if val != seg.Value {
				return nil, nil, false
			}
		case Dynamic:
			params = append(params, Param{Key: seg.Value, Value: val})
		}
	}

	return params, segs[len(p.segments):], true
}

// A Compiler compiles patterns, caching the result by pattern string.
// It is safe for concurrent use.
type Compiler struct {
	mu    sync.RWMutex
	cache map[string]compiled
}

type compiled struct {
	p   Pattern
	err error
}

func NewCompiler() *Compiler {
	return &Compiler{cache: make(map[string]compiled)}
}

// Compile returns the cached result for pattern, compiling it on first use.
func (c *Compiler) Compile(pattern string) (Pattern, error) {
	c.mu.RLock()
	hit, ok := c.cache[pattern]
	c.mu.RUnlock()
	if ok {
		return hit.p, hit.err
	}

	p, err := Compile(pattern)

	c.mu.Lock()
	c.cache[pattern] = compiled{p: p, err: err}
	c.mu.Unlock()

	return p, err
}

// Len reports the number of cached patterns.
func (c *Compiler) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
