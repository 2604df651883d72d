// Package query selects map objects with boolean expressions such as
//
//	Kind == "pill" && Owner == 255 && Armour < 10
//
// Expressions are compiled once against the Object environment, so a typo
// in a field name is reported before any object is evaluated.
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"bolo-mapkit/pkg/bmap"
)

// Object is the environment an expression sees. Fields that do not apply
// to an object's kind are zero.
type Object struct {
	Kind    string
	Index   int
	X       int
	Y       int
	Owner   int
	Neutral bool
	Armour  int
	Speed   int
	Shells  int
	Mines   int
	Dir     int
	Tile    string
}

// InRect reports whether the object lies in the w by h rectangle at (x, y).
func (o Object) InRect(x, y, w, h int) bool {
	return o.X >= x && o.X < x+w && o.Y >= y && o.Y < y+h
}

// Filter is a compiled expression.
type Filter struct {
	src     string
	program *vm.Program
}

// Compile parses src. An empty expression matches every object.
func Compile(src string) (*Filter, error) {
	f := &Filter{src: src}
	if src == "" {
		return f, nil
	}
	prog, err := expr.Compile(src, expr.Env(Object{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", src, err)
	}
	f.program = prog
	return f, nil
}

func (f *Filter) String() string { return f.src }

// Match evaluates the filter against o.
func (f *Filter) Match(o Object) (bool, error) {
	if f.program == nil {
		return true, nil
	}
	out, err := vm.Run(f.program, o)
	if err != nil {
		return false, fmt.Errorf("evaluate query %q on %s %d: %w", f.src, o.Kind, o.Index, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Select returns the objects of m that match, pills first, then bases,
// then starts.
func (f *Filter) Select(m *bmap.Map) ([]Object, error) {
	var out []Object
	for _, o := range Objects(m) {
		ok, err := f.Match(o)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// Objects lists every object of m as a query environment.
func Objects(m *bmap.Map) []Object {
	objs := make([]Object, 0, m.Pills.Len()+m.Bases.Len()+m.Starts.Len())
	for i, p := range m.Pills.All() {
		objs = append(objs, Object{
			Kind: bmap.KindPill.String(), Index: i, X: int(p.X), Y: int(p.Y),
			Owner: int(p.Owner), Neutral: p.Owner == bmap.Neutral,
			Armour: int(p.Armour), Speed: int(p.Speed),
			Tile: m.TileAt(int(p.X), int(p.Y)).String(),
		})
	}
	for i, b := range m.Bases.All() {
		objs = append(objs, Object{
			Kind: bmap.KindBase.String(), Index: i, X: int(b.X), Y: int(b.Y),
			Owner: int(b.Owner), Neutral: b.Owner == bmap.Neutral,
			Armour: int(b.Armour), Shells: int(b.Shells), Mines: int(b.Mines),
			Tile: m.TileAt(int(b.X), int(b.Y)).String(),
		})
	}
	for i, s := range m.Starts.All() {
		objs = append(objs, Object{
			Kind: bmap.KindStart.String(), Index: i, X: int(s.X), Y: int(s.Y),
			Owner: bmap.Neutral, Neutral: true, Dir: int(s.Dir),
			Tile: m.TileAt(int(s.X), int(s.Y)).String(),
		})
	}
	return objs
}
