package ast

// Visitor receives the nodes of a set of entries in document order.
type Visitor interface {
	VisitEntry(*Entry) error
	VisitSubEntry(*SubEntry) error
	VisitRedirect(owner *Entry, r *Redirect) error
}

// Walk visits every entry, then each of its sub-entries and redirects.
// It returns the first error returned by the visitor.
func Walk(entries []*Entry, visitor Visitor) error {
	for _, e := range entries {
		if err := visitor.VisitEntry(e); err != nil {
			return err
		}

		if e.redirect != nil {
			if err := visitor.VisitRedirect(e, e.redirect); err != nil {
				return err
			}
		}

		for _, s := range e.subEntries {
			if err := visitor.VisitSubEntry(s); err != nil {
				return err
			}
			if s.redirect != nil {
				if err := visitor.VisitRedirect(e, s.redirect); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// VisitorFuncs adapts plain functions to Visitor. Nil fields are skipped.
type VisitorFuncs struct {
	Entry    func(*Entry) error
	SubEntry func(*SubEntry) error
	Redirect func(owner *Entry, r *Redirect) error
}

func (f VisitorFuncs) VisitEntry(e *Entry) error {
	if f.Entry == nil {
		return nil
	}
	return f.Entry(e)
}

func (f VisitorFuncs) VisitSubEntry(s *SubEntry) error {
	if f.SubEntry == nil {
		return nil
	}
	return f.SubEntry(s)
}

func (f VisitorFuncs) VisitRedirect(owner *Entry, r *Redirect) error {
	if f.Redirect == nil {
		return nil
	}
	return f.Redirect(owner, r)
}
