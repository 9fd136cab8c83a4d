package knowledge

import (
	"regexp"
	"strings"
)

// Extraction patterns over abstract sentences. Each pattern yields one
// relation; group 1 is the head and the last group is the tail.
var (
	definitionPattern = regexp.MustCompile(
		`(?i)\b([A-Z][\w-]*(?:\s+[\w-]+){0,4})\s+(?:is|are|refers to)\s+(?:a|an|the)?\s*([^.,;:]{3,80})`)
	performancePattern = regexp.MustCompile(
		`(?i)\b([A-Z][\w-]*(?:\s+[\w-]+){0,4})\s+achieves?\s+(\d+(?:\.\d+)?%?\s*(?:accuracy|F1|BLEU|precision|recall|score))\s+on\s+([^.,;:]{3,80})`)
	taskPattern = regexp.MustCompile(
		`(?i)\b([A-Z][\w-]*(?:\s+[\w-]+){0,4})\s+(?:is used for|can be used for|is suitable for|is applied to)\s+([^.,;:]{3,80})`)
)

// ExtractTriples mines knowledge-graph triples from a paper's abstract and
// keyword list with shallow patterns. It favors precision over recall; a
// paper with a flat abstract may yield keyword triples only.
func ExtractTriples(paperID, title, abstract string, keywords []string) []Triple {
	var triples []Triple

	for _, m := range definitionPattern.FindAllStringSubmatch(abstract, -1) {
		triples = append(triples, Triple{
			Head:     clean(m[1]),
			Relation: "is_defined_as",
			Tail:     clean(m[2]),
			PaperID:  paperID,
			Source:   "abstract",
		})
	}
	for _, m := range performancePattern.FindAllStringSubmatch(abstract, -1) {
		triples = append(triples, Triple{
			Head:     clean(m[1]),
			Relation: "achieves",
			Tail:     clean(m[2]) + " on " + clean(m[3]),
			PaperID:  paperID,
			Source:   "abstract",
		})
	}
	for _, m := range taskPattern.FindAllStringSubmatch(abstract, -1) {
		triples = append(triples, Triple{
			Head:     clean(m[1]),
			Relation: "used_for",
			Tail:     clean(m[2]),
			PaperID:  paperID,
			Source:   "abstract",
		})
	}

	head := clean(title)
	for _, kw := range keywords {
		kw = clean(kw)
		if kw == "" || head == "" {
			continue
		}
		triples = append(triples, Triple{
			Head:     head,
			Relation: "has_keyword",
			Tail:     kw,
			PaperID:  paperID,
			Source:   "keywords",
		})
	}
	return triples
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
