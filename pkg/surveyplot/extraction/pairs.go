package extraction

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// TaxonomyKeys are the prioritization taxonomy classes, matched as substrings.
var TaxonomyKeys = []string{
	"coverage", "requirement", "probability", "distribution",
	"human", "clustering", "history", "model", "cost", "other",
}

// SelectionTaxonomyKeys are the selection taxonomy classes, matched as substrings.
var SelectionTaxonomyKeys = []string{
	"integer", "data-", "symbolic", "dynamic", "graph",
	"textual", "sdg", "path", "modification", "firewall",
	"cluster", "design",
}

// AlgorithmKeys are the algorithm families in display order.
var AlgorithmKeys = []string{"heuristic", "meta", "graph", "dynamic", "ml", "greedy"}

// Objectives classifies the number of optimisation objectives of a paper.
type Objectives string

const (
	ObjectivesUnknown Objectives = ""
	ObjectivesOne     Objectives = "one"
	ObjectivesMulti   Objectives = "multi"
)

// MatchTaxonomy returns the keys found in any part of a taxonomy cell, in key order.
func MatchTaxonomy(raw string, keys []string) []string {
	found := make(map[string]bool)
	for _, tok := range tokens(raw) {
		for _, k := range keys {
			if strings.Contains(tok, k) {
				found[k] = true
			}
		}
	}
	return inOrder(keys, found)
}

// MatchAlgorithms returns the algorithm families of a cell, in AlgorithmKeys
// order. "meta" covers metaheuristics, so a part mentioning both meta and
// heuristic counts only as meta.
func MatchAlgorithms(raw string) []string {
	found := make(map[string]bool)
	for _, tok := range tokens(raw) {
		meta := strings.Contains(tok, "meta")
		if meta {
			found["meta"] = true
		}
		if strings.Contains(tok, "heuristic") && !meta {
			found["heuristic"] = true
		}
		for _, k := range []string{"graph", "dynamic", "greedy"} {
			if strings.Contains(tok, k) {
				found[k] = true
			}
		}
		if strings.Contains(tok, "ml") || strings.Contains(tok, "machine learning") {
			found["ml"] = true
		}
	}
	return inOrder(AlgorithmKeys, found)
}

var digits = regexp.MustCompile(`\d+`)

// ParseObjectives reads the objectives cell. Words win over numbers; the
// first number of 1 or at least 2 decides otherwise, and anything else
// non-empty counts as a single objective.
func ParseObjectives(raw string) Objectives {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return ObjectivesUnknown
	case strings.Contains(s, "one") || strings.Contains(s, "single") || s == "1":
		return ObjectivesOne
	case strings.Contains(s, "multu") || strings.Contains(s, "multi"),
		strings.Contains(s, "two") || strings.Contains(s, "three"):
		return ObjectivesMulti
	}
	for _, n := range digits.FindAllString(s, -1) {
		v, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		if v >= 2 {
			return ObjectivesMulti
		}
		if v == 1 {
			return ObjectivesOne
		}
	}
	if strings.Contains(s, "objectives") || strings.Contains(s, ">") {
		return ObjectivesMulti
	}
	return ObjectivesOne
}

// PaperRef is a paper listed under a pair.
type PaperRef struct {
	ID             string
	MultiObjective bool
}

func (r PaperRef) String() string {
	if r.MultiObjective {
		return r.ID + " [multi-obj]"
	}
	return r.ID
}

// Pair is a (taxonomy, algorithm) combination and the papers that use it.
type Pair struct {
	Taxonomy  string
	Algorithm string
	Papers    []PaperRef
}

// Pairs cross the taxonomy classes and algorithm families of prioritization
// primary studies. Pairs are sorted by taxonomy then algorithm, papers
// numerically.
func Pairs(papers []Paper) []Pair {
	type key struct{ taxonomy, algorithm string }
	members := make(map[key]paperSet)
	multi := make(map[int]bool)

	for _, p := range Filter(papers, MethodPrioritization) {
		multi[p.Index] = ParseObjectives(p.Objectives) == ObjectivesMulti
		for _, t := range MatchTaxonomy(p.Taxonomy, TaxonomyKeys) {
			for _, a := range MatchAlgorithms(p.Algorithms) {
				k := key{t, a}
				if members[k] == nil {
					members[k] = make(paperSet)
				}
				members[k][p.Index] = true
			}
		}
	}

	out := make([]Pair, 0, len(members))
	for k, set := range members {
		pair := Pair{Taxonomy: k.taxonomy, Algorithm: k.algorithm}
		for _, i := range set.indices() {
			pair.Papers = append(pair.Papers, PaperRef{ID: Paper{Index: i}.ID(), MultiObjective: multi[i]})
		}
		out = append(out, pair)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Taxonomy != out[j].Taxonomy {
			return out[i].Taxonomy < out[j].Taxonomy
		}
		return out[i].Algorithm < out[j].Algorithm
	})
	return out
}

func inOrder(keys []string, found map[string]bool) []string {
	var out []string
	for _, k := range keys {
		if found[k] {
			out = append(out, k)
		}
	}
	return out
}
