package flowchart

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const commentMarker = "%%"

// ident is the node identifier alphabet. Subgraph IDs are UUID strings and
// contain '-', so they can never collide with an identifier.
const ident = `[A-Za-z0-9_]+`

// shapeAnnotation matches any bracketed node shape without capturing it.
const shapeAnnotation = `(?:\[\[[^\]]*\]\]|\[\([^)]*\)\]|\{\{[^}]*\}\}|\(\([^)]*\)\)|\[[^\]]*\]|\([^)]*\)|\{[^}]*\}|>[^\]]*\])`

// edgeSource is an identifier with an optional inline shape, ignored for edges.
const edgeSource = `(` + ident + `)(?:\s*` + shapeAnnotation + `)?\s*`

var (
	directionRe = regexp.MustCompile(`(?im)^[ \t]*(?:graph|flowchart)[ \t]+(TD|TB|LR|RL|BT)\b`)
	// headerRe matches a header holding at most one token. Longer lines
	// such as "graph LR A-->B" fall through and are parsed as statements.
	headerRe    = regexp.MustCompile(`^(?i:graph|flowchart)(?:\s+\S+)?$`)
	subgraphRe  = regexp.MustCompile(`^subgraph\s+(?:"([^"]+)"|\S+?\s*\[\s*"?([^\]"]*)"?\s*\]|(\S+))`)

	// Alternatives are ordered so two-character openers win over their
	// one-character prefixes. Capture group k+2 holds the text of nodeShapes[k].
	nodeRe = regexp.MustCompile(`(` + ident + `)\s*(?:` +
		`\[\[([^\]]*)\]\]|` +
		`\[\(([^)]*)\)\]|` +
		`\{\{([^}]*)\}\}|` +
		`\(\(([^)]*)\)\)|` +
		`\[([^\]]*)\]|` +
		`\(([^)]*)\)|` +
		`\{([^}]*)\}|` +
		`>([^\]]*)\])`)

	labeledEdgeRe = regexp.MustCompile(edgeSource + `(-\.->|-->|---|==>)\s*\|([^|]*)\|\s*(` + ident + `)`)
	inlineEdgeRe  = regexp.MustCompile(edgeSource + `(--|-\.|==)\s*([^\s\-.=>|][^>|]*?)\s*(-->|---|\.->|==>)\s*(` + ident + `)`)
	plainEdgeRe   = regexp.MustCompile(edgeSource + `(-\.->|-->|---|==>)\s*(` + ident + `)`)
)

var nodeShapes = [...]Shape{
	ShapeSubroutine,
	ShapeCylinder,
	ShapeHexagon,
	ShapeCircle,
	ShapeRectangle,
	ShapeStadium,
	ShapeDiamond,
	ShapeAsymmetric,
}

// subgraphNamespace seeds the name-based subgraph IDs.
var subgraphNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/flowgrid/subgraph"))

// Parse reads flowchart source text and returns its typed graph.
//
// Parse never fails. Statements it cannot classify contribute nothing, and
// an empty document yields an empty graph with [DefaultDirection]. The
// returned graph satisfies [Graph.Validate].
func Parse(src string) *Graph {
	g := New()
	g.Direction = detectDirection(src)

	p := &parser{g: g}
	for _, line := range strings.Split(src, "\n") {
		for _, stmt := range splitStatements(line) {
			p.statement(strings.TrimSpace(stmt))
		}
	}
	return g
}

// detectDirection returns the direction of the first header line, or
// DefaultDirection when there is none.
func detectDirection(src string) Direction {
	m := directionRe.FindStringSubmatch(src)
	if m == nil {
		return DefaultDirection
	}
	if d, ok := ParseDirection(m[1]); ok {
		return d
	}
	return DefaultDirection
}

// parser carries the per-call state: the graph under construction and the
// single open-region slot. current is nil while no region is open.
type parser struct {
	g        *Graph
	current  *Subgraph
	ordinals int
}

func (p *parser) statement(s string) {
	switch {
	case s == "", strings.HasPrefix(s, commentMarker), headerRe.MatchString(s):
		return
	}

	if m := subgraphRe.FindStringSubmatch(s); m != nil {
		p.openRegion(firstNonEmpty(m[1], m[2], m[3]))
		return
	}
	if s == "end" && p.current != nil {
		p.current = nil
		return
	}

	p.declareNodes(s)
	p.declareEdge(s)
}

// openRegion starts a new subgraph. A region that is still open is not
// closed; it simply stops receiving members.
func (p *parser) openRegion(title string) {
	id := uuid.NewSHA1(subgraphNamespace, fmt.Appendf(nil, "%d:%s", p.ordinals, title))
	p.ordinals++
	sg := &Subgraph{ID: id.String(), Title: title, Nodes: []string{}}
	p.g.Subgraphs = append(p.g.Subgraphs, sg)
	p.current = sg
}

func (p *parser) attach(id string) {
	if p.current != nil {
		p.current.addMember(id)
	}
}

func (p *parser) declareNodes(s string) {
	masked := maskLabels(s)
	for _, m := range nodeRe.FindAllStringSubmatchIndex(masked, -1) {
		id := masked[m[2]:m[3]]
		for k, shape := range nodeShapes {
			at := 2 * (k + 2)
			if m[at] < 0 {
				continue
			}
			p.declareNode(id, cleanText(masked[m[at]:m[at+1]]), shape)
			break
		}
	}
}

// declareNode creates id or, when text is informative, overwrites the
// existing node's text and shape. A bare re-declaration never erases text.
func (p *parser) declareNode(id, text string, shape Shape) {
	n, exists := p.g.Node(id)
	if !exists {
		if text == "" {
			text = id
		}
		_ = p.g.AddNode(&Node{ID: id, Text: text, Type: shape})
		p.attach(id)
		return
	}
	if text != "" && text != id {
		n.Text = text
		n.Type = shape
		p.attach(id)
	}
}

func (p *parser) declareEdge(s string) {
	e, ok := matchEdge(s)
	if !ok {
		return
	}
	p.ensureNode(e.From)
	p.ensureNode(e.To)
	p.g.Edges = append(p.g.Edges, e)
}

// ensureNode auto-creates a default rectangle for an undeclared endpoint.
func (p *parser) ensureNode(id string) {
	if _, ok := p.g.Node(id); ok {
		return
	}
	_ = p.g.AddNode(&Node{ID: id, Text: id, Type: ShapeRectangle})
	p.attach(id)
}

// matchEdge extracts the first edge of a statement. The pipe-label form is
// tried first, then the inline-label form, then a bare arrow.
func matchEdge(s string) (Edge, bool) {
	if m := labeledEdgeRe.FindStringSubmatch(s); m != nil {
		return Edge{From: m[1], To: m[4], Label: strings.TrimSpace(m[3]), Style: arrowStyle(m[2])}, true
	}
	if m := inlineEdgeRe.FindStringSubmatch(s); m != nil {
		return Edge{From: m[1], To: m[5], Label: strings.TrimSpace(m[3]), Style: arrowStyle(m[2] + m[4])}, true
	}
	if m := plainEdgeRe.FindStringSubmatch(s); m != nil {
		return Edge{From: m[1], To: m[3], Style: arrowStyle(m[2])}, true
	}
	return Edge{}, false
}

func arrowStyle(arrow string) LineStyle {
	switch {
	case strings.Contains(arrow, "."):
		return StyleDotted
	case strings.Contains(arrow, "=="):
		return StyleThick
	default:
		return StyleSolid
	}
}

// cleanText trims node text and drops one pair of surrounding quotes.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
