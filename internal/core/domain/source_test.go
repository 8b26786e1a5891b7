package domain

import (
	"strings"
	"testing"
)

func TestLikelyImageURLAcceptsKnownExtensions(t *testing.T) {
	for _, url := range []string{
		"https://example.com/a.jpg",
		"https://example.com/bottle.JPEG",
		"https://cdn.example.com/x/y/z.png",
		"http://example.com/pic.webp",
		"https://example.com/anim.gif?w=200",
	} {
		if !LikelyImageURL(url) {
			t.Fatalf("expected %q to pass", url)
		}
	}
}

func TestLikelyImageURLFallsBackToSubstring(t *testing.T) {
	if !LikelyImageURL("https://cdn.example.com/image/signed/abc123") {
		t.Fatalf("expected substring fallback to pass")
	}
	if LikelyImageURL("https://example.com/document.pdf") {
		t.Fatalf("expected non-image url to fail")
	}
}

func TestLikelyImageURLRejectsUnparseable(t *testing.T) {
	for _, url := range []string{"", "not a url", "/relative/a.jpg", "://nope.png"} {
		if LikelyImageURL(url) {
			t.Fatalf("expected %q to fail", url)
		}
	}
}

func TestFilenameFromURL(t *testing.T) {
	if got := FilenameFromURL("https://example.com/a/b/sauvage.jpg"); got != "sauvage.jpg" {
		t.Fatalf("expected sauvage.jpg, got %q", got)
	}
	got := FilenameFromURL("https://example.com/")
	if !strings.HasPrefix(got, "perfume-") || !strings.HasSuffix(got, ".jpg") {
		t.Fatalf("expected synthesized filename, got %q", got)
	}
}

func TestFormatFileSizeTiers(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{120000, "117.2 KB"},
		{1048575, "1024.0 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576, "5.0 MB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.n); got != tc.want {
			t.Fatalf("FormatFileSize(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestApplyOverridesWinOnCollision(t *testing.T) {
	p := &Perfume{Name: "Sauvage", Brand: "Dior", AIConfidence: 0.85}
	p.ApplyOverrides(map[string]any{
		"name":    "Sauvage Elixir",
		"year":    float64(2021),
		"unknown": "ignored",
	})
	if p.Name != "Sauvage Elixir" {
		t.Fatalf("expected override to win, got %q", p.Name)
	}
	if p.Year == nil || *p.Year != 2021 {
		t.Fatalf("expected year 2021, got %v", p.Year)
	}
	if p.Brand != "Dior" {
		t.Fatalf("expected untouched brand, got %q", p.Brand)
	}
}
