// Package markup splits one logical line into styled runs for display.
//
// The recognized subset is deliberately small: "# " and "## " headers,
// **bold** / __bold__ and *italic* / _italic_. Markers stay visible as
// low-emphasis runs so the visual text always matches the document.
// Emphasis does not nest; the first opener governs until its closer.
package markup

import "strings"

// Emphasis is the display style of a run.
type Emphasis uint8

const (
	Plain Emphasis = iota
	Bold
	Italic
	// Marker is a markup character shown with low emphasis.
	Marker
)

// String returns the emphasis name.
func (e Emphasis) String() string {
	switch e {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Marker:
		return "marker"
	default:
		return "unknown"
	}
}

// Run is a piece of a line with a single emphasis. Runs are never empty.
type Run struct {
	Text     string
	Emphasis Emphasis
}

var headerPrefixes = []string{"## ", "# "}

// ParseLine converts line into runs. A trailing "\n" or "\r\n" is ignored;
// all other characters, trailing spaces included, appear in exactly one run.
func ParseLine(line string) []Run {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	for _, prefix := range headerPrefixes {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			var p parser
			p.emit(prefix, Marker)
			p.emit(rest, Bold)
			return p.runs
		}
	}

	p := parser{src: line}
	p.scan()
	return p.runs
}

// parser is a single left-to-right scan with a pending plain run.
type parser struct {
	src     string
	pos     int
	pending strings.Builder
	runs    []Run
}

func (p *parser) scan() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != '*' && c != '_' {
			p.pending.WriteByte(c)
			p.pos++
			continue
		}

		p.flush()
		if p.pos+1 < len(p.src) && p.src[p.pos+1] == c {
			p.span(p.src[p.pos:p.pos+2], Bold)
		} else {
			p.span(p.src[p.pos:p.pos+1], Italic)
		}
	}
	p.flush()
}

// span handles an opener at p.pos. With a closer, the enclosed text gets
// emphasis and scanning resumes after the closer. Without one, the opener
// and the rest of the line are literal.
func (p *parser) span(marker string, emphasis Emphasis) {
	body := p.pos + len(marker)
	end := strings.Index(p.src[body:], marker)
	if end < 0 {
		p.emit(marker, Plain)
		p.emit(p.src[body:], Plain)
		p.pos = len(p.src)
		return
	}

	p.emit(marker, Marker)
	p.emit(p.src[body:body+end], emphasis)
	p.emit(marker, Marker)
	p.pos = body + end + len(marker)
}

func (p *parser) flush() {
	p.emit(p.pending.String(), Plain)
	p.pending.Reset()
}

func (p *parser) emit(text string, emphasis Emphasis) {
	if text == "" {
		return
	}
	p.runs = append(p.runs, Run{Text: text, Emphasis: emphasis})
}

// Text concatenates the run texts, reproducing the parsed line.
func Text(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
