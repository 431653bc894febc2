package extraction

import "strings"

// SUT origin categories, in report order.
const (
	OriginSIR        = "SIR"
	OriginDefects4J  = "Defects4J"
	OriginApache     = "Apache Projects"
	OriginIndustrial = "Industrial / Proprietary"
	OriginPublic     = "Other Public Repositories"
)

// Origins lists the SUT origin categories in report order.
var Origins = []string{OriginSIR, OriginDefects4J, OriginApache, OriginIndustrial, OriginPublic}

// origin recognises one category. Markers match as substrings of a token;
// names match a token exactly or as a substring.
type origin struct {
	name    string
	markers []string
	names   []string
}

var origins = []origin{
	{
		name:    OriginSIR,
		markers: []string{"sir"},
		names: []string{
			"print_tokens", "print tokens", "print_tokens 2", "print tokens 2",
			"flex", "grep", "sed", "space", "gzip",
			"nano-xml", "nano xml",
			"xml-security", "xml security",
			"ant", "jtopas", "replace", "schedule", "schedule2", "tcas", "totinfo",
		},
	},
	{
		name:    OriginDefects4J,
		markers: []string{"defects4j", "defect4j", "defects 4j"},
		names: []string{
			"chart", "jfreechart",
			"closure",
			"math", "commons-math", "commons math",
			"lang", "commons-lang", "commons lang",
			"time", "joda-time", "joda time",
			"mockito",
			"cli", "commons-cli", "commons cli",
			"codec", "commons-codec", "commons codec",
			"collections", "commons-collections", "commons collections",
			"compress", "commons-compress", "commons compress",
			"gson", "jsoup", "jxpath",
		},
	},
	{
		name:    OriginApache,
		markers: []string{"apache", "apache software foundation", "asf"},
		names: []string{
			"ant", "jmeter", "tomcat", "camel",
			"commons-math", "commons lang", "commons-lang", "commons-io", "commons io",
			"commons-cli", "commons cli", "commons-codec", "commons codec",
			"commons-collections", "commons collections", "commons-compress", "commons compress",
			"struts", "hadoop", "spark", "jfreechart", "xml-security", "xml security",
		},
	},
	{
		name: OriginIndustrial,
		markers: []string{
			"industrial", "proprietary", "company", "industry",
			"cisco", "abb", "abb robotics", "omicron", "siemens", "bosch",
			"google open source data set", "google open source dataset",
			"google open-source data set", "google dataset",
		},
	},
	{
		name:    OriginPublic,
		markers: []string{"open source dataset", "public dataset", "dataset pubblico", "open dataset"},
		names: []string{
			"nopcommerce", "umbraco", "jedit", "freemind", "k9-mail", "k9 mail",
			"open sudoku", "open-sudoku", "tcp-ci-dataset", "tcp ci dataset",
		},
	},
}

// CategorizeSUTs maps the parts of a system-under-test cell to origin
// categories, in Origins order. A paper may fall into several categories.
// Parts matching nothing count as other public repositories.
func CategorizeSUTs(raw string) []string {
	toks := splitSUT(raw)
	for i, t := range toks {
		toks[i] = strings.ToLower(strings.TrimSpace(t))
	}

	found := make(map[string]bool)
	for _, o := range origins {
		if containsAny(toks, o.markers) || containsAny(toks, o.names) {
			found[o.name] = true
		}
	}
	if len(found) == 0 && len(toks) > 0 {
		found[OriginPublic] = true
	}
	return inOrder(Origins, found)
}

// OriginGroup lists the papers of a method drawing on one SUT origin.
type OriginGroup struct {
	Origin string
	Papers []string
}

// SUTReport holds the origin listing of one method.
type SUTReport struct {
	Method string
	Groups []OriginGroup
}

// SUTs aggregates the SUT origins of the primary studies of each method.
// Papers with an empty SUT cell are skipped; empty categories are omitted.
func SUTs(papers []Paper, methods ...string) []SUTReport {
	if len(methods) == 0 {
		methods = []string{MethodPrioritization, MethodSelection}
	}
	out := make([]SUTReport, 0, len(methods))
	for _, m := range methods {
		sets := make(map[string]paperSet)
		for _, p := range Filter(papers, m) {
			if strings.TrimSpace(p.SUTs) == "" {
				continue
			}
			for _, c := range CategorizeSUTs(p.SUTs) {
				if sets[c] == nil {
					sets[c] = make(paperSet)
				}
				sets[c][p.Index] = true
			}
		}
		r := SUTReport{Method: m}
		for _, c := range Origins {
			if len(sets[c]) > 0 {
				r.Groups = append(r.Groups, OriginGroup{Origin: c, Papers: sets[c].sorted()})
			}
		}
		out = append(out, r)
	}
	return out
}

func containsAny(toks, subs []string) bool {
	for _, t := range toks {
		for _, s := range subs {
			if strings.Contains(t, s) {
				return true
			}
		}
	}
	return false
}
