package html

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/tyll/core"
	"golang.org/x/net/html"
)

// Stylesheet is a list of style rules in order of appearance.
type Stylesheet struct {
	rules []rule
}

type rule struct {
	selector     string
	match        cascadia.Selector
	declarations []*css.Declaration
}

// ParseStylesheet parses CSS source. At-rules are ignored, as are rules with
// selectors which cannot be compiled.
func ParseStylesheet(source string) (*Stylesheet, error) {
	cssom, err := parser.Parse(source)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse stylesheet")
	}
	sheet := &Stylesheet{}
	for _, r := range cssom.Rules {
		if r.Kind != css.QualifiedRule {
			tracer().Debugf("ignoring at-rule %s", r.Name)
			continue
		}
		for _, sel := range r.Selectors {
			sel = strings.TrimSpace(sel)
			match, err := cascadia.Compile(sel)
			if err != nil {
				tracer().Errorf("ignoring rule with selector %q: %v", sel, err)
				continue
			}
			sheet.rules = append(sheet.rules, rule{
				selector:     sel,
				match:        match,
				declarations: r.Declarations,
			})
		}
	}
	tracer().Debugf("stylesheet has %d rules", len(sheet.rules))
	return sheet, nil
}

// Len returns the number of rules, counting every selector of a selector
// group as a rule of its own.
func (sheet *Stylesheet) Len() int {
	if sheet == nil {
		return 0
	}
	return len(sheet.rules)
}

// Selectors returns the selectors of all rules.
func (sheet *Stylesheet) Selectors() []string {
	if sheet == nil {
		return nil
	}
	selectors := make([]string, len(sheet.rules))
	for i, r := range sheet.rules {
		selectors[i] = r.selector
	}
	return selectors
}

// declarationsFor collects the declarations of all rules matching n.
func (sheet *Stylesheet) declarationsFor(n *html.Node) []*css.Declaration {
	if sheet == nil {
		return nil
	}
	var decls []*css.Declaration
	for _, r := range sheet.rules {
		if r.match.Match(n) {
			decls = append(decls, r.declarations...)
		}
	}
	return decls
}
