// Package render draws trees and section tables for the terminal.
package render

import (
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/oidtree/internal/oid"
	"github.com/dbsmedya/oidtree/internal/tree"
)

// Config controls terminal output.
type Config struct {
	UseASCII bool // draw branches with |-- and `-- instead of box characters
	Color    bool
	MaxDepth int // 0 draws every level
}

// DefaultConfig returns a Config that draws box characters in color.
func DefaultConfig() *Config {
	return &Config{Color: true}
}

type branches struct {
	tee, last, pipe, blank string
}

var (
	unicodeBranches = branches{tee: "├── ", last: "└── ", pipe: "│   ", blank: "    "}
	asciiBranches   = branches{tee: "|-- ", last: "`-- ", pipe: "|   ", blank: "    "}
)

type line struct {
	label  string // prefix and name, uncolored
	prefix string
	name   string
	oid    string
	vendor string
}

// Tree renders root as an indented outline with an aligned oid column.
// The first node of each vendor's enterprise subtree is annotated with the
// vendor name.
func Tree(root *tree.Node, cfg *Config) string {
	if root == nil {
		return ""
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	br := unicodeBranches
	if cfg.UseASCII {
		br = asciiBranches
	}

	type frame struct {
		node       *tree.Node
		depth      int
		indent     string // drawn before this node's own branch
		branch     string
		lastVendor string
	}

	var lines []line
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := f.node.Name()
		if name == "" {
			name = f.node.Key
		}
		l := line{prefix: f.indent + f.branch, name: name, oid: f.node.OID()}
		vendor, _ := oid.Vendor(l.oid)
		if vendor != f.lastVendor {
			l.vendor = vendor
		}
		l.label = l.prefix + l.name
		lines = append(lines, l)

		if cfg.MaxDepth > 0 && f.depth >= cfg.MaxDepth {
			continue
		}

		childIndent := f.indent
		switch f.branch {
		case br.tee:
			childIndent += br.pipe
		case br.last:
			childIndent += br.blank
		}
		children := f.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			branch := br.tee
			if i == len(children)-1 {
				branch = br.last
			}
			stack = append(stack, frame{
				node:       children[i],
				depth:      f.depth + 1,
				indent:     childIndent,
				branch:     branch,
				lastVendor: vendor,
			})
		}
	}

	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l.label); w > width {
			width = w
		}
	}

	var sb strings.Builder
	for _, l := range lines {
		pad := width - runewidth.StringWidth(l.label)
		sb.WriteString(l.prefix)
		sb.WriteString(paint(cfg, color.FgCyan, l.name))
		if l.oid != "" {
			sb.WriteString(strings.Repeat(" ", pad+2))
			sb.WriteString(paint(cfg, color.FgDarkGray, l.oid))
		}
		if l.vendor != "" {
			sb.WriteString(" ")
			sb.WriteString(paint(cfg, color.FgYellow, "["+l.vendor+"]"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteTree writes Tree(root, cfg) to w.
func WriteTree(w io.Writer, root *tree.Node, cfg *Config) error {
	_, err := io.WriteString(w, Tree(root, cfg))
	return err
}

func paint(cfg *Config, c color.Color, s string) string {
	if !cfg.Color {
		return s
	}
	return c.Sprint(s)
}
