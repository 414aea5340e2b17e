package collection

import (
	"mercator-hq/lexicon/pkg/notation/ast"
)

// FindByHeadword returns the first entry with the given headword.
func (c *Collection) FindByHeadword(headword string) (*ast.Entry, bool) {
	for _, e := range c.entries {
		if e.Headword() == headword {
			return e, true
		}
	}
	return nil, false
}

// FindAllByHeadword returns every entry with the given headword.
func (c *Collection) FindAllByHeadword(headword string) []*ast.Entry {
	return c.filter(func(e *ast.Entry) bool { return e.Headword() == headword })
}

// NormalEntries returns the entries that are not pure redirections.
func (c *Collection) NormalEntries() []*ast.Entry {
	return c.filter(func(e *ast.Entry) bool { return !e.IsRedirect() })
}

// RedirectedEntries returns the pure redirection entries.
func (c *Collection) RedirectedEntries() []*ast.Entry {
	return c.filter((*ast.Entry).IsRedirect)
}

// FindRedirectionsTo returns entries that redirect to target, either through
// their own redirect or through a sub-entry redirect. A non-empty relType
// restricts matches to redirects carrying that relation type.
func (c *Collection) FindRedirectionsTo(target, relType string) []*ast.Entry {
	matches := func(r *ast.Redirect) bool {
		return r != nil && r.Target() == target && (relType == "" || r.HasType(relType))
	}
	return c.filter(func(e *ast.Entry) bool {
		if matches(e.Redirect()) {
			return true
		}
		for _, s := range e.SubEntries() {
			if matches(s.Redirect()) {
				return true
			}
		}
		return false
	})
}

// FindByAnnotation returns entries carrying the annotation key.
func (c *Collection) FindByAnnotation(key string) []*ast.Entry {
	return c.filter(func(e *ast.Entry) bool { return e.HasAnnotation(key) })
}

// FindByAnnotationValue returns entries whose annotation key equals value.
func (c *Collection) FindByAnnotationValue(key string, value ast.AnnotationValue) []*ast.Entry {
	return c.filter(func(e *ast.Entry) bool {
		v, ok := e.Annotation(key)
		return ok && v == value
	})
}

// Headwords returns the headword of every entry in order.
func (c *Collection) Headwords() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Headword()
	}
	return out
}

func (c *Collection) filter(keep func(*ast.Entry) bool) []*ast.Entry {
	var out []*ast.Entry
	for _, e := range c.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
