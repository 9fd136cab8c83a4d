package match

import "strings"

// sentenceEnders covers both Latin and CJK terminal punctuation.
const sentenceEnders = ".!?。！？"

// SplitSentences breaks text into sentences on terminal punctuation.
// Empty and whitespace-only segments are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if strings.ContainsRune(sentenceEnders, r) {
			appendSentence(&sentences, b.String())
			b.Reset()
		}
	}
	appendSentence(&sentences, b.String())
	return sentences
}

func appendSentence(sentences *[]string, s string) {
	s = strings.TrimSpace(s)
	if s != "" {
		*sentences = append(*sentences, s)
	}
}
