package enrich

import (
	"testing"
)

func TestLinks_SplitsInternalExternal(t *testing.T) {
	page := `<html><body>
		<a href="/docs">Docs</a>
		<a href="https://example.com/pricing">Pricing</a>
		<a href="https://other.example/partner">Partner</a>
	</body></html>`

	links := Links(page, "https://example.com/")

	if len(links.Internal) != 2 {
		t.Fatalf("internal = %+v, want 2 links", links.Internal)
	}
	if len(links.External) != 1 {
		t.Fatalf("external = %+v, want 1 link", links.External)
	}
	if links.Internal[0].Href != "https://example.com/docs" {
		t.Errorf("relative href not resolved: %q", links.Internal[0].Href)
	}
	if links.External[0].Text != "Partner" {
		t.Errorf("anchor text = %q", links.External[0].Text)
	}
}

func TestLinks_SkipsNonHTTPSchemes(t *testing.T) {
	page := `<html><body>
		<a href="mailto:team@example.com">Mail</a>
		<a href="javascript:void(0)">JS</a>
		<a href="tel:+15550100">Call</a>
		<a href="https://example.com/real">Real</a>
	</body></html>`

	links := Links(page, "https://example.com/")

	total := len(links.Internal) + len(links.External)
	if total != 1 {
		t.Fatalf("expected only the https link, got %d: %+v", total, links)
	}
}

func TestLinks_Deduplicates(t *testing.T) {
	page := `<html><body>
		<a href="/same">One</a>
		<a href="/same">Two</a>
		<a href="https://example.com/same">Three</a>
	</body></html>`

	links := Links(page, "https://example.com/")

	if len(links.Internal) != 1 {
		t.Fatalf("expected deduplication to one link, got %+v", links.Internal)
	}
}

func TestLinks_HostComparisonIsCaseInsensitive(t *testing.T) {
	page := `<a href="https://EXAMPLE.com/up">Up</a>`

	links := Links(page, "https://example.com/")

	if len(links.Internal) != 1 || len(links.External) != 0 {
		t.Fatalf("case difference misclassified the link: %+v", links)
	}
}

func TestLinks_BadBaseURL(t *testing.T) {
	links := Links(`<a href="/x">X</a>`, "://no-scheme")

	if len(links.Internal) != 0 || len(links.External) != 0 {
		t.Errorf("expected empty result for unparseable page URL, got %+v", links)
	}
	if links.Internal == nil || links.External == nil {
		t.Error("slices should be allocated even when empty")
	}
}
