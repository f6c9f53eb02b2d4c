package gen

import (
	"fmt"

	"github.com/syssam/umlgen"
	"github.com/syssam/umlgen/compiler/load"
)

// Edge is a scheduling dependency built from one injected field: Source is
// the declaring class, Destination the class it points at.
type Edge struct {
	Source      string
	Destination string
	Type        Cardinality
}

// EdgesFor returns one edge per injected field of m, in document order.
// Cardinalities missing from cards are resolved from the model.
func EdgesFor(m *load.Model, cards map[string]Cardinality) ([]Edge, error) {
	var edges []Edge
	for _, id := range m.ClassOrder {
		c := m.Classes[id]
		if c == nil {
			return nil, umlgen.NewBrokenReferenceError("class", id, m.Name)
		}
		for _, fid := range c.InjectedFields {
			f := m.InjectedFields[fid]
			if f == nil {
				return nil, umlgen.NewBrokenReferenceError("injected field", fid, c.Name)
			}
			card, ok := cards[fid]
			if !ok {
				var err error
				if card, err = ResolveCardinality(f, m.Associations[f.Association]); err != nil {
					return nil, err
				}
			}
			edges = append(edges, Edge{Source: f.Class, Destination: f.Type, Type: card})
		}
	}
	return edges, nil
}

// Schedule returns a creation order of classIDs in which no class comes
// before the classes it depends on through edges.
//
// Classes touching an edge are visited in input order, pass after pass.
// A class is placed once every open edge it touches lets it go; its edges
// are closed immediately. A pass that closes no edge means the remaining
// classes depend on each other and a CircularDependencyError listing the
// open edges is returned. Classes left over when all edges are closed are
// appended in input order. A repeated id in classIDs is ignored.
func Schedule(classIDs []string, edges []Edge) ([]string, error) {
	s := &scheduler{
		known: make(map[string]bool, len(classIDs)),
		index: make(map[string][]int),
	}
	for _, id := range classIDs {
		if !s.known[id] {
			s.known[id] = true
			s.ids = append(s.ids, id)
		}
	}
	if err := s.build(edges); err != nil {
		return nil, err
	}
	return s.run()
}

type scheduler struct {
	ids   []string
	known map[string]bool
	edges []Edge
	open  []bool
	// index maps a class to the edges it touches.
	index map[string][]int
	left  int
}

func (s *scheduler) build(edges []Edge) error {
	s.edges = make([]Edge, len(edges))
	s.open = make([]bool, len(edges))
	for i, e := range edges {
		for _, id := range []string{e.Source, e.Destination} {
			if !s.known[id] {
				return umlgen.NewBrokenReferenceError("class", id, e.Source+" -> "+e.Destination)
			}
		}
		switch {
		case e.Source == e.Destination:
			e.Type = Reflexive
		case e.Type == Unknown || e.Type == Reflexive:
			return fmt.Errorf("gen: edge %s -> %s has no cardinality", e.Source, e.Destination)
		}
		s.edges[i], s.open[i] = e, true
		s.index[e.Source] = append(s.index[e.Source], i)
		if e.Destination != e.Source {
			s.index[e.Destination] = append(s.index[e.Destination], i)
		}
	}
	s.left = len(edges)
	return nil
}

func (s *scheduler) run() ([]string, error) {
	order := make([]string, 0, len(s.ids))
	placed := make(map[string]bool, len(s.ids))
	var pending []string
	for _, id := range s.ids {
		if len(s.index[id]) > 0 {
			pending = append(pending, id)
		}
	}
	for s.left > 0 {
		before := s.left
		next := make([]string, 0, len(pending))
		for _, id := range pending {
			if !s.removable(id) {
				next = append(next, id)
				continue
			}
			order = append(order, id)
			placed[id] = true
			s.close(id)
		}
		pending = next
		if s.left == before {
			return nil, s.cycle()
		}
	}
	for _, id := range s.ids {
		if !placed[id] {
			order = append(order, id)
		}
	}
	return order, nil
}

// removable reports whether every open edge touching id lets it be placed.
func (s *scheduler) removable(id string) bool {
	for _, i := range s.index[id] {
		if s.open[i] && !safeToRemove(s.edges[i], id) {
			return false
		}
	}
	return true
}

// safeToRemove is the blocking rule of an edge for one of its endpoints.
func safeToRemove(e Edge, id string) bool {
	switch e.Type {
	case OneToOne, ManyToMany:
		return e.Source != id
	case OneToMany:
		return e.Destination != id
	case ManyToOne:
		return e.Source != id
	default:
		return true
	}
}

func (s *scheduler) close(id string) {
	for _, i := range s.index[id] {
		if s.open[i] {
			s.open[i] = false
			s.left--
		}
	}
}

func (s *scheduler) cycle() error {
	var stuck []umlgen.StuckEdge
	for i, e := range s.edges {
		if s.open[i] {
			stuck = append(stuck, umlgen.StuckEdge{
				Source:      e.Source,
				Destination: e.Destination,
				Type:        e.Type.String(),
			})
		}
	}
	return umlgen.NewCircularDependencyError(stuck...)
}
