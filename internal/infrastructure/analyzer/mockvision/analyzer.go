package mockvision

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

var knownBrands = []string{
	"DIOR", "CHANEL", "GUCCI", "VERSACE", "PRADA", "TOM FORD",
	"YSL", "ARMANI", "BURBERRY", "HERMES", "CREED", "JO MALONE",
}

// Analyzer is a deterministic stand-in for a vision/OCR backend. It
// always reports the same detected text and palette, then derives the
// record fields from them with the same heuristics a real OCR result
// would flow through. Useful for demos and tests without burning API
// quota.
type Analyzer struct {
	detectedText []string
	colors       []string
	confidence   float64
}

func New() *Analyzer {
	return &Analyzer{
		detectedText: []string{"DIOR", "SAUVAGE", "EAU DE PARFUM"},
		colors:       []string{"#1a1a1a", "#c0c0c0"},
		confidence:   0.85,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, _ string) (*domain.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrAnalysis, "analyze image", err)
	}

	brand := extractBrand(a.detectedText)
	name := extractName(a.detectedText, brand)
	family := guessFamily(name, a.colors)

	return &domain.Analysis{
		Brand:       brand,
		Name:        name,
		Family:      family,
		Description: generateDescription(brand, name, family),
		Confidence:  a.confidence,
		// Year is hard to read off a bottle; left for the caller.
		Year:          nil,
		SuggestedTags: []string{"luxury", "masculine", "fresh"},
	}, nil
}

func extractBrand(detectedText []string) string {
	for _, text := range detectedText {
		upper := strings.ToUpper(text)
		for _, brand := range knownBrands {
			if strings.Contains(upper, brand) {
				return strings.ToUpper(brand[:1]) + strings.ToLower(brand[1:])
			}
		}
	}
	if len(detectedText) > 0 {
		return detectedText[0]
	}
	return "Unknown Brand"
}

func extractName(detectedText []string, brand string) string {
	upperBrand := strings.ToUpper(brand)
	for _, text := range detectedText {
		upper := strings.ToUpper(text)
		if strings.Contains(upper, upperBrand) || len(text) <= 2 ||
			strings.Contains(upper, "EAU") || strings.Contains(upper, "PARFUM") {
			continue
		}
		return text
	}
	return "Unknown Perfume"
}

func guessFamily(name string, colors []string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "rose") || strings.Contains(lower, "floral"):
		return "Floral"
	case strings.Contains(lower, "wood") || strings.Contains(lower, "oud"):
		return "Woody"
	case strings.Contains(lower, "citrus") || strings.Contains(lower, "fresh"):
		return "Fresh"
	case strings.Contains(lower, "spice") || strings.Contains(lower, "oriental"):
		return "Oriental"
	}

	// Dark packaging reads as woody, light as fresh.
	for _, color := range colors {
		if brightness(color) < 100 {
			return "Woody"
		}
	}
	return "Fresh"
}

func brightness(hexColor string) int {
	if len(hexColor) != 7 || hexColor[0] != '#' {
		return 255
	}
	r, errR := strconv.ParseInt(hexColor[1:3], 16, 32)
	g, errG := strconv.ParseInt(hexColor[3:5], 16, 32)
	b, errB := strconv.ParseInt(hexColor[5:7], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return 255
	}
	return int((r + g + b) / 3)
}

func generateDescription(brand, name, family string) string {
	switch family {
	case "Floral":
		return fmt.Sprintf("A sophisticated floral fragrance from %s, %s captures the essence of blooming gardens with its elegant and timeless composition.", brand, name)
	case "Woody":
		return fmt.Sprintf("%s's %s is a warm and masculine woody fragrance, perfect for those who appreciate depth and sophistication.", brand, name)
	case "Fresh":
		return fmt.Sprintf("Fresh and invigorating, %s by %s is a modern fragrance that embodies vitality and elegance.", name, brand)
	case "Oriental":
		return fmt.Sprintf("An exotic and captivating scent, %s's %s takes you on an olfactory journey through oriental markets and spice routes.", brand, name)
	default:
		return fmt.Sprintf("A distinctive fragrance from %s, %s offers a unique olfactory experience.", brand, name)
	}
}
