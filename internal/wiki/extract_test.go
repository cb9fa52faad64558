package wiki

import (
	"strings"
	"testing"
)

func TestLeadText(t *testing.T) {
	page := `<html><body><div class="mw-parser-output">
<table class="infobox vcard"><tr><td>Area 105 km2</td></tr></table>
<p>Paris is the capital of France.</p>
<p>It is on the river <a href="/wiki/Seine">Seine</a>.</p>
<h2>History</h2>
<p>The Parisii settled the area in the third century BC.</p>
</div></body></html>`

	text, err := LeadText(page)
	if err != nil {
		t.Fatalf("LeadText failed: %v", err)
	}
	if !strings.Contains(text, "Paris is the capital of France.") {
		t.Errorf("missing first paragraph: %q", text)
	}
	if !strings.Contains(text, "It is on the river Seine.") {
		t.Errorf("link text not inlined: %q", text)
	}
	if strings.Contains(text, "Parisii") {
		t.Errorf("text after first heading included: %q", text)
	}
	if strings.Contains(text, "Area 105") {
		t.Errorf("infobox text included: %q", text)
	}
}

func TestLeadTextSkipsCitationMarkers(t *testing.T) {
	page := `<div class="mw-parser-output">
<p>Honey never spoils.<sup class="reference">[1]</sup> Sealed jars remain edible.</p>
</div>`

	text, err := LeadText(page)
	if err != nil {
		t.Fatalf("LeadText failed: %v", err)
	}
	if strings.Contains(text, "[1]") {
		t.Errorf("citation marker included: %q", text)
	}
	if !strings.Contains(text, "Honey never spoils. Sealed jars remain edible.") {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestLeadTextSkipsNavboxAndEmptyParagraphs(t *testing.T) {
	page := `<div class="mw-parser-output">
<table class="navbox"><tr><td>Related articles</td></tr></table>
<p class="mw-empty-elt"></p>
<p>  </p>
<p>The octopus has three hearts.</p>
</div>`

	text, err := LeadText(page)
	if err != nil {
		t.Fatalf("LeadText failed: %v", err)
	}
	if text != "The octopus has three hearts." {
		t.Errorf("expected single paragraph, got %q", text)
	}
}

func TestLeadTextMultipleParagraphs(t *testing.T) {
	page := `<div id="mw-content-text">
<p>First paragraph.</p>
<p>Second paragraph.</p>
</div>`

	text, err := LeadText(page)
	if err != nil {
		t.Fatalf("LeadText failed: %v", err)
	}
	if text != "First paragraph.\n\nSecond paragraph." {
		t.Errorf("paragraphs not joined with blank line: %q", text)
	}
}

func TestLeadTextCollapsesWhitespace(t *testing.T) {
	page := `<div class="mw-parser-output"><p>Spread
across
	several   lines.</p></div>`

	text, err := LeadText(page)
	if err != nil {
		t.Fatalf("LeadText failed: %v", err)
	}
	if text != "Spread across several lines." {
		t.Errorf("whitespace not collapsed: %q", text)
	}
}

func TestLeadTextNoParagraphs(t *testing.T) {
	_, err := LeadText(`<div class="mw-parser-output"><h2>Only headings</h2></div>`)
	if err == nil {
		t.Fatal("expected error for page with no lead paragraphs")
	}
}
