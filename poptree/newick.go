// Copyright © 2025 ChandrashekarCR
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package poptree

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Newick reads a tree in parenthetical (newick) format,
// parsing its leaf labels against the given registry.
// The statement must end with a semicolon.
// The tree is treated as rooted.
//
// If the registry is nil,
// a disposable registry is used,
// so the labels of the tree
// do not pollute any shared identity space.
func Newick(r io.Reader, reg *Registry) (*Tree, error) {
	if reg == nil {
		reg = NewRegistry()
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &parser{
		data: strings.TrimSpace(string(b)),
		reg:  reg,
		tree: &Tree{
			reg:   reg,
			terms: make(map[string]*node),
		},
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.tree, nil
}

type parser struct {
	data string
	pos  int
	reg  *Registry
	tree *Tree
}

func (p *parser) parse() error {
	root, err := p.subtree(nil)
	if err != nil {
		return err
	}
	p.skipSpaces()
	if p.pos >= len(p.data) || p.data[p.pos] != ';' {
		return fmt.Errorf("newick: expecting %q at position %d", ';', p.pos)
	}
	p.pos++
	p.skipSpaces()
	if p.pos < len(p.data) {
		return fmt.Errorf("newick: unexpected text after %q at position %d", ';', p.pos)
	}
	p.tree.root = root
	return nil
}

// subtree parses a leaf
// or a parenthesized group of subtrees,
// with its optional label and branch length.
func (p *parser) subtree(parent *node) (*node, error) {
	p.skipSpaces()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("newick: unexpected end of data")
	}

	n := &node{parent: parent}
	if p.data[p.pos] == '(' {
		p.pos++
		for {
			c, err := p.subtree(n)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, c)

			p.skipSpaces()
			if p.pos >= len(p.data) {
				return nil, fmt.Errorf("newick: unclosed parenthesis")
			}
			if p.data[p.pos] == ',' {
				p.pos++
				continue
			}
			if p.data[p.pos] == ')' {
				p.pos++
				break
			}
			return nil, fmt.Errorf("newick: unexpected character %q at position %d", p.data[p.pos], p.pos)
		}
		// internal node labels are tolerated and ignored
		if _, err := p.label(); err != nil {
			return nil, err
		}
	} else {
		name, err := p.label()
		if err != nil {
			return nil, err
		}
		if name != "" {
			n.taxon = p.reg.Taxon(name)
			if err := p.tree.addTerm(n); err != nil {
				return nil, fmt.Errorf("newick: at position %d: %v", p.pos, err)
			}
		}
	}

	if err := p.branchLength(n); err != nil {
		return nil, err
	}
	return n, nil
}

// label parses a bare or single-quoted label.
// An empty label is valid.
func (p *parser) label() (string, error) {
	p.skipSpaces()
	if p.pos < len(p.data) && p.data[p.pos] == '\'' {
		p.pos++
		var sb strings.Builder
		for {
			if p.pos >= len(p.data) {
				return "", fmt.Errorf("newick: unclosed quotation")
			}
			c := p.data[p.pos]
			if c == '\'' {
				// a doubled quote is an escaped quote
				if p.pos+1 < len(p.data) && p.data[p.pos+1] == '\'' {
					sb.WriteByte('\'')
					p.pos += 2
					continue
				}
				p.pos++
				return sb.String(), nil
			}
			sb.WriteByte(c)
			p.pos++
		}
	}

	start := p.pos
	for p.pos < len(p.data) && !isSpecial(p.data[p.pos]) {
		p.pos++
	}
	return p.data[start:p.pos], nil
}

// branchLength parses an optional ":length" suffix.
func (p *parser) branchLength(n *node) error {
	p.skipSpaces()
	if p.pos >= len(p.data) || p.data[p.pos] != ':' {
		return nil
	}
	p.pos++
	p.skipSpaces()

	start := p.pos
	for p.pos < len(p.data) && !isSpecial(p.data[p.pos]) {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.data[start:p.pos], 64)
	if err != nil {
		return fmt.Errorf("newick: invalid branch length at position %d: %v", start, err)
	}
	if v < 0 {
		return fmt.Errorf("newick: negative branch length at position %d", start)
	}
	n.length = v
	return nil
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			return
		}
		p.pos++
	}
}

// isSpecial reports whether a character
// ends a label or a branch length.
func isSpecial(c byte) bool {
	switch c {
	case '(', ')', ',', ':', ';', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
