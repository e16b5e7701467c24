package fingerprint

import (
	"strings"

	"golang.org/x/net/html"
)

// DOM computes a SimHash of the markup structure alone: tag names in
// document order, shingled into 3-grams so local structure weighs more than
// absolute position. Text, attributes and comments are ignored, which keeps
// the fingerprint stable across visits that only change copy.
func DOM(rawHTML string) uint64 {
	tags := tagSequence(rawHTML)
	if len(tags) == 0 {
		return 0
	}

	shingles := shingle(tags, 3)
	if len(shingles) == 0 {
		// Too few tags to shingle; hash the bare sequence.
		return simhash(tags)
	}
	return simhash(shingles)
}

// tagSequence tokenizes the markup and collects opening tag names in order.
func tagSequence(rawHTML string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(rawHTML))
	var tags []string
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return tags
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			tags = append(tags, string(name))
		}
	}
}

// shingle joins consecutive n-token windows with underscores.
func shingle(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		out = append(out, strings.Join(tokens[i:i+n], "_"))
	}
	return out
}
