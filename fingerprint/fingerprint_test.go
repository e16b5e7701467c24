package fingerprint

import (
	"testing"
)

func TestText_Deterministic(t *testing.T) {
	text := "welcome to the example landing page with pricing and documentation"
	fp1 := Text(text)
	fp2 := Text(text)

	if fp1 != fp2 {
		t.Errorf("identical text produced different fingerprints: %064b vs %064b", fp1, fp2)
	}
}

func TestText_SmallEdit(t *testing.T) {
	before := "the quick brown fox jumps over the lazy dog"
	after := "the quick brown fox leaps over the lazy dog"

	dist := Distance(Text(before), Text(after))
	if dist > 10 {
		t.Errorf("one-word edit moved the fingerprint too far: distance %d", dist)
	}
}

func TestText_UnrelatedPages(t *testing.T) {
	a := Text("welcome to the example landing page with pricing and documentation")
	b := Text("breaking news coverage of the quarterly earnings report season")

	if dist := Distance(a, b); dist < 5 {
		t.Errorf("unrelated texts are suspiciously close: distance %d", dist)
	}
}

func TestText_EmptyInput(t *testing.T) {
	if fp := Text(""); fp != 0 {
		t.Errorf("empty input should produce fingerprint 0, got %064b", fp)
	}
}

func TestText_WhitespaceOnly(t *testing.T) {
	if fp := Text("  \t\n  "); fp != 0 {
		t.Errorf("whitespace-only input should produce fingerprint 0, got %064b", fp)
	}
}

func TestText_SingleWord(t *testing.T) {
	fp := Text("pageshot")
	if fp == 0 {
		t.Error("single word should produce a non-zero fingerprint")
	}
	if fp != Text("pageshot") {
		t.Error("single word fingerprint is not deterministic")
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
		{"zero zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	fp1 := Text("the rendered page body")
	fp2 := Text("the rendered page body")

	if !Similar(fp1, fp2, 0) {
		t.Error("identical fingerprints should be similar at threshold 0")
	}

	fp3 := Text("something else entirely from another site altogether")
	dist := Distance(fp1, fp3)

	if Similar(fp1, fp3, dist-1) {
		t.Errorf("should not be similar at threshold %d when distance is %d", dist-1, dist)
	}
	if !Similar(fp1, fp3, dist) {
		t.Errorf("should be similar at threshold equal to distance (%d)", dist)
	}
}

func TestDOM_SameStructureDifferentCopy(t *testing.T) {
	page1 := `<html><head><title>Release 1.0</title></head><body><nav><a href="/">Home</a></nav><article><h1>Launch</h1><p>We shipped.</p></article></body></html>`
	page2 := `<html><head><title>Release 2.0</title></head><body><nav><a href="/">Start</a></nav><article><h1>Update</h1><p>We shipped again.</p></article></body></html>`

	fp1 := DOM(page1)
	fp2 := DOM(page2)

	if fp1 != fp2 {
		t.Errorf("identical structures should produce the same fingerprint, distance %d", Distance(fp1, fp2))
	}
}

func TestDOM_DifferentStructures(t *testing.T) {
	article := `<html><body><article><h1>Title</h1><p>Text</p><p>More text</p></article></body></html>`
	grid := `<html><body><table><tr><td>A</td><td>B</td></tr><tr><td>C</td><td>D</td></tr></table></body></html>`

	dist := Distance(DOM(article), DOM(grid))
	if dist < 3 {
		t.Errorf("different structures should be farther apart, got distance %d", dist)
	}
}

func TestDOM_EmptyHTML(t *testing.T) {
	if fp := DOM(""); fp != 0 {
		t.Errorf("empty markup should produce fingerprint 0, got %064b", fp)
	}
}

func TestDOM_PlainText(t *testing.T) {
	if fp := DOM("just some plain text with no tags"); fp != 0 {
		t.Errorf("tagless input should produce fingerprint 0, got %064b", fp)
	}
}

func TestDOM_SingleTag(t *testing.T) {
	if fp := DOM("<br/>"); fp == 0 {
		t.Error("single self-closing tag should produce a non-zero fingerprint")
	}
}

func TestDOM_NestingDepth(t *testing.T) {
	deep := `<div><div><div><p>Deep</p></div></div></div>`
	shallow := `<div><p>Shallow</p></div>`

	if DOM(deep) == DOM(shallow) {
		t.Error("different nesting depths should produce different fingerprints")
	}
}

func TestTagSequence(t *testing.T) {
	markup := `<html><head><title>Test</title></head><body><div><p>Hello</p></div></body></html>`
	tags := tagSequence(markup)

	expected := []string{"html", "head", "title", "body", "div", "p"}
	if len(tags) != len(expected) {
		t.Fatalf("expected %d tags, got %d: %v", len(expected), len(tags), tags)
	}
	for i, tag := range tags {
		if tag != expected[i] {
			t.Errorf("tag[%d] = %q, want %q", i, tag, expected[i])
		}
	}
}

func TestShingle(t *testing.T) {
	tokens := []string{"nav", "ul", "li", "a"}

	got := shingle(tokens, 3)
	expected := []string{"nav_ul_li", "ul_li_a"}

	if len(got) != len(expected) {
		t.Fatalf("expected %d shingles, got %d: %v", len(expected), len(got), got)
	}
	for i, s := range got {
		if s != expected[i] {
			t.Errorf("shingle[%d] = %q, want %q", i, s, expected[i])
		}
	}
}

func TestShingle_TooFewTokens(t *testing.T) {
	if got := shingle([]string{"html", "body"}, 3); got != nil {
		t.Errorf("expected nil when tokens are fewer than n, got %v", got)
	}
}
