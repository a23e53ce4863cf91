package argfmt

import (
	"errors"
	"strings"
)

// A Grammar selects one of the two format languages.
type Grammar uint8

const (
	// DecodeGrammar is the language of argument decoding formats:
	// atoms, '(' groups, the '|' and '$' markers, and an optional
	// ':' or ';' terminator.
	DecodeGrammar Grammar = iota
	// BuildGrammar is the language of value building formats: atoms,
	// '(', '[' and '{' groups, and ':' or ',' separators and
	// whitespace, which are ignored.
	BuildGrammar
)

func (g Grammar) String() string {
	if g == BuildGrammar {
		return "build"
	}
	return "decode"
}

// A Directive is one unit of a compiled format.
type Directive struct {
	// Code is the directive character. For groups, Code is the
	// opening bracket.
	Code byte
	// Mod is the modifier that followed Code ('#', '*', '!' or '&'),
	// or 0.
	Mod byte
	// Pos is the offset of Code in the format string.
	Pos int
	// Group is set for bracketed groups.
	Group bool
	// Sub holds the directives inside a group.
	Sub []Directive
}

// IsGroup reports whether d is a bracketed group. Brackets that the
// grammar does not treat as groups compile to plain atoms.
func (d Directive) IsGroup() bool { return d.Group }

func (d Directive) String() string {
	var b strings.Builder
	d.write(&b)
	return b.String()
}

func (d Directive) write(b *strings.Builder) {
	b.WriteByte(d.Code)
	if d.IsGroup() {
		for _, s := range d.Sub {
			s.write(b)
		}
		b.WriteByte(closers[d.Code])
		return
	}
	if d.Mod != 0 {
		b.WriteByte(d.Mod)
	}
}

// A Format is a compiled format string. Formats are immutable and
// safe for concurrent use.
type Format struct {
	src     string
	grammar Grammar
	dirs    []Directive
	// name and message are the texts after a ':' or ';' terminator.
	name    string
	message string
	// maxPositional is the number of top-level directives that a
	// positional argument can satisfy.
	maxPositional int
}

// String returns the source text of the format.
func (f *Format) String() string { return f.src }

// Grammar returns the language f was compiled in.
func (f *Format) Grammar() Grammar { return f.grammar }

// Directives returns the top-level directives of f. Callers must not
// modify the returned slice.
func (f *Format) Directives() []Directive { return f.dirs }

// Name returns the function name given after a ':' terminator.
func (f *Format) Name() string { return f.name }

// Message returns the replacement error message given after a ';'
// terminator.
func (f *Format) Message() string { return f.message }

type formatKey struct {
	g   Grammar
	src string
}

var formats cache[formatKey, *Format]

// CompileArgs compiles an argument decoding format.
func CompileArgs(format string) (*Format, error) {
	return compile(format, DecodeGrammar)
}

// CompileBuild compiles a value building format.
func CompileBuild(format string) (*Format, error) {
	return compile(format, BuildGrammar)
}

func compile(src string, g Grammar) (*Format, error) {
	key := formatKey{g, src}
	if ret, err := formats.Get(key); !errors.Is(err, errNotFound) {
		return ret, err
	}

	debugFormat("compile(%s, %q)", g, src)
	p := formatParser{src: src, g: g}
	dirs, err := p.group(0, -1)
	if err != nil {
		formats.SetErr(key, err)
		return nil, err
	}
	ret := &Format{
		src:     src,
		grammar: g,
		dirs:    dirs,
		name:    p.name,
		message: p.message,
	}
	if g == DecodeGrammar {
		for _, d := range dirs {
			if d.Code == '$' {
				break
			}
			if d.Code != '|' {
				ret.maxPositional++
			}
		}
	}
	formats.Set(key, ret)
	return ret, nil
}

// formatParser consumes a format string left to right, once.
type formatParser struct {
	src string
	pos int
	g   Grammar

	name      string
	message   string
	sawOpt    bool
	sawKwOnly bool
}

// group parses directives until closer, which is 0 at the top
// level. open is the offset of the group's opening bracket.
func (p *formatParser) group(closer byte, open int) ([]Directive, error) {
	var ret []Directive
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case closer != 0 && c == closer:
			p.pos++
			return ret, nil
		case c == ')' || c == ']' || c == '}':
			return nil, p.strayCloser(c, closer, open)
		case c == '(' || (p.g == BuildGrammar && (c == '[' || c == '{')):
			start := p.pos
			p.pos++
			sub, err := p.group(closers[c], start)
			if err != nil {
				return nil, err
			}
			ret = append(ret, Directive{Code: c, Pos: start, Group: true, Sub: sub})
		case p.g == DecodeGrammar && (c == ':' || c == ';'):
			if closer != 0 {
				return nil, errorf(KindStructure, p.pos, "%q inside group opened at %d", c, open)
			}
			if c == ':' {
				p.name = p.src[p.pos+1:]
			} else {
				p.message = p.src[p.pos+1:]
			}
			p.pos = len(p.src)
			return ret, nil
		case p.g == DecodeGrammar && (c == '|' || c == '$'):
			if err := p.marker(c, open); err != nil {
				return nil, err
			}
			ret = append(ret, Directive{Code: c, Pos: p.pos})
			p.pos++
		case p.g == BuildGrammar && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			p.pos++
		case p.g == BuildGrammar && (c == ':' || c == ','):
			if closer == 0 {
				return nil, errorf(KindStructure, p.pos, "%q without '{'", c)
			}
			p.pos++
		default:
			ret = append(ret, p.atom())
		}
	}
	if closer != 0 {
		return nil, errorf(KindStructure, open, "dangling group: %q at %d has no matching %q", p.src[open], open, closer)
	}
	return ret, nil
}

func (p *formatParser) strayCloser(c, want byte, open int) error {
	if want == 0 {
		var opener byte
		for o, cl := range closers {
			if cl == c {
				opener = o
			}
		}
		return errorf(KindStructure, p.pos, "%q without %q", c, opener)
	}
	return errorf(KindStructure, p.pos, "%q does not close %q at %d", c, p.src[open], open)
}

func (p *formatParser) marker(c byte, open int) error {
	if open >= 0 {
		return errorf(KindStructure, p.pos, "%q inside group opened at %d", c, open)
	}
	switch {
	case c == '|' && p.sawOpt:
		return errorf(KindStructure, p.pos, "'|' specified twice")
	case c == '|' && p.sawKwOnly:
		return errorf(KindStructure, p.pos, "'$' before '|'")
	case c == '$' && p.sawKwOnly:
		return errorf(KindStructure, p.pos, "'$' specified twice")
	}
	if c == '|' {
		p.sawOpt = true
	} else {
		p.sawKwOnly = true
	}
	return nil
}

// atom consumes one atom and its modifier, if any. Characters
// outside the grammar are returned as directives too; it is up to
// the interpreter to reject or skip them.
func (p *formatParser) atom() Directive {
	d := Directive{Code: p.src[p.pos], Pos: p.pos}
	p.pos++

	mods := decodeMods[d.Code]
	if p.g == BuildGrammar {
		mods = buildMods[d.Code]
	} else if d.Code == 'e' {
		// Encoded strings are spelled es, et, es# or et#.
		if p.pos < len(p.src) && (p.src[p.pos] == 's' || p.src[p.pos] == 't') {
			p.pos++
		}
		mods = "#"
	}
	if mods != "" && p.pos < len(p.src) && strings.IndexByte(mods, p.src[p.pos]) >= 0 {
		d.Mod = p.src[p.pos]
		p.pos++
	}
	debugFormat("atom %s at %d", d, d.Pos)
	return d
}

// Slots returns the number of output slots d consumes when decoding.
func (d Directive) Slots() int { return slotCount(d) }

func slotCount(d Directive) int {
	switch {
	case d.Code == '|' || d.Code == '$' || unsupportedAtoms.Has(d.Code):
		return 0
	case d.IsGroup():
		n := 0
		for _, s := range d.Sub {
			n += slotCount(s)
		}
		return n
	case d.Mod == '#' || d.Mod == '!' || d.Mod == '&':
		return 2
	}
	return 1
}
