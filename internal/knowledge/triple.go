package knowledge

import "fmt"

// Triple is a single knowledge-graph fact extracted from a paper.
type Triple struct {
	Head     string `json:"head"`
	Relation string `json:"relation"`
	Tail     string `json:"tail"`
	PaperID  string `json:"paper_id"`
	Source   string `json:"source,omitempty"`
}

// Text renders the triple in the flat form used for embedding and prompting.
func (t Triple) Text() string {
	return fmt.Sprintf("%s [REL] %s [TAIL] %s", t.Head, t.Relation, t.Tail)
}
