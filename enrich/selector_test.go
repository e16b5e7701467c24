package enrich

import (
	"errors"
	"strings"
	"testing"
)

const selectorPage = `<html><body>
	<main>
		<h1>Guide</h1>
		<p>First paragraph.</p>
	</main>
	<aside class="promo">Subscribe now</aside>
	<script>console.log("noise")</script>
</body></html>`

func TestSelectText_SingleMatch(t *testing.T) {
	text, err := SelectText(selectorPage, "main")
	if err != nil {
		t.Fatalf("SelectText: %v", err)
	}
	if !strings.Contains(text, "Guide") || !strings.Contains(text, "First paragraph.") {
		t.Errorf("text = %q", text)
	}
	if strings.Contains(text, "Subscribe") {
		t.Errorf("text leaked outside the selector: %q", text)
	}
}

func TestSelectText_MultipleMatchesJoined(t *testing.T) {
	page := `<div><p class="x">one</p><p>skip</p><p class="x">two</p></div>`

	text, err := SelectText(page, "p.x")
	if err != nil {
		t.Fatalf("SelectText: %v", err)
	}
	if text != "one\n\ntwo" {
		t.Errorf("text = %q, want matches joined in document order", text)
	}
}

func TestSelectText_ScriptBodiesExcluded(t *testing.T) {
	text, err := SelectText(selectorPage, "body")
	if err != nil {
		t.Fatalf("SelectText: %v", err)
	}
	if strings.Contains(text, "console.log") {
		t.Errorf("script body leaked into text: %q", text)
	}
}

func TestSelectText_NoMatch(t *testing.T) {
	_, err := SelectText(selectorPage, "article.missing")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestSelectText_InvalidSelector(t *testing.T) {
	_, err := SelectText(selectorPage, "main[")
	if err == nil {
		t.Fatal("expected a parse error for an invalid selector")
	}
	if errors.Is(err, ErrNoMatch) {
		t.Fatal("invalid selector must not be reported as a miss")
	}
}
