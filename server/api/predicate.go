package api

import "strings"

// Predicate is a composable feed filter that compiles to a parameterized
// SQL fragment. Caller-controlled values only ever travel through the
// args slice, never through the query text.
type Predicate interface {
	Compile() (string, []interface{})
}

type byCategory struct {
	id uint
}

// ByCategory matches articles carrying an edge to the given category.
func ByCategory(id uint) Predicate {
	return byCategory{id: id}
}

func (p byCategory) Compile() (string, []interface{}) {
	return "articles.id IN (SELECT article_id FROM article_categories WHERE category_id = ?)", []interface{}{p.id}
}

type byAnyCategory struct {
	ids []uint
}

// ByAnyCategory matches articles carrying an edge to any of the given
// categories.
func ByAnyCategory(ids []uint) Predicate {
	return byAnyCategory{ids: ids}
}

func (p byAnyCategory) Compile() (string, []interface{}) {
	return "articles.id IN (SELECT article_id FROM article_categories WHERE category_id IN ?)", []interface{}{p.ids}
}

type conjunction struct {
	op    string
	preds []Predicate
}

// And combines predicates so an article must satisfy all of them.
func And(preds ...Predicate) Predicate {
	return conjunction{op: " AND ", preds: preds}
}

// Or combines predicates so an article must satisfy at least one of them.
func Or(preds ...Predicate) Predicate {
	return conjunction{op: " OR ", preds: preds}
}

func (p conjunction) Compile() (string, []interface{}) {
	if len(p.preds) == 1 {
		return p.preds[0].Compile()
	}
	clauses := make([]string, 0, len(p.preds))
	args := []interface{}{}
	for _, pred := range p.preds {
		clause, clauseArgs := pred.Compile()
		clauses = append(clauses, "("+clause+")")
		args = append(args, clauseArgs...)
	}
	return strings.Join(clauses, p.op), args
}
