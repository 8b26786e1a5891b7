package mockvision

import (
	"context"
	"testing"
)

func TestAnalyzeIsDeterministic(t *testing.T) {
	analyzer := New()

	first, err := analyzer.Analyze(context.Background(), "https://cdn/x.jpg")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), "https://cdn/y.jpg")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if first.Brand != "Dior" || first.Name != "SAUVAGE" {
		t.Fatalf("unexpected detection: %+v", first)
	}
	if first.Family != "Woody" {
		t.Fatalf("expected dark palette to read as Woody, got %q", first.Family)
	}
	if first.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %v", first.Confidence)
	}
	if first.Year != nil {
		t.Fatalf("mock must not guess a year")
	}
	if first.Brand != second.Brand || first.Name != second.Name ||
		first.Family != second.Family || first.Description != second.Description {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestExtractBrandTitleCasesKnownBrand(t *testing.T) {
	if got := extractBrand([]string{"TOM FORD OUD WOOD"}); got != "Tom ford" {
		t.Fatalf("extractBrand() = %q", got)
	}
	if got := extractBrand([]string{"NOBRAND", "X"}); got != "NOBRAND" {
		t.Fatalf("expected first token fallback, got %q", got)
	}
	if got := extractBrand(nil); got != "Unknown Brand" {
		t.Fatalf("expected unknown fallback, got %q", got)
	}
}

func TestExtractNameFiltersBrandAndLabelTokens(t *testing.T) {
	got := extractName([]string{"DIOR", "EAU DE PARFUM", "OK", "SAUVAGE"}, "Dior")
	if got != "SAUVAGE" {
		t.Fatalf("extractName() = %q", got)
	}
	if got := extractName([]string{"DIOR"}, "Dior"); got != "Unknown Perfume" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGuessFamilyKeywordsBeforeColors(t *testing.T) {
	if got := guessFamily("Rose Petal", []string{"#1a1a1a"}); got != "Floral" {
		t.Fatalf("expected keyword match to win, got %q", got)
	}
	if got := guessFamily("Nameless", []string{"#fafafa"}); got != "Fresh" {
		t.Fatalf("expected light palette to read as Fresh, got %q", got)
	}
}
