package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// LikelyImageURL reports whether raw plausibly names a fetchable image.
// The check is a deliberately loose two-tier heuristic: a recognized
// extension on the path, or the substring "image" anywhere in the raw
// URL (signed CDN links often carry no extension). False positives are
// tolerated; tightening this would reject legitimate sources.
func LikelyImageURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return false
	}
	path := strings.ToLower(parsed.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return strings.Contains(raw, "image")
}

// FilenameFromURL derives a filename from the last path segment, or
// synthesizes a timestamped one when the path carries none.
func FilenameFromURL(raw string) string {
	if parsed, err := url.Parse(raw); err == nil {
		segments := strings.Split(parsed.Path, "/")
		if last := segments[len(segments)-1]; last != "" {
			return last
		}
	}
	return fmt.Sprintf("perfume-%d.jpg", time.Now().UnixMilli())
}

// FormatFileSize renders a byte count for the human-readable step trace.
func FormatFileSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// ApplyOverrides layers caller-supplied field overrides onto a record.
// Unknown keys are ignored rather than rejected so callers can pass the
// same map to future schema revisions.
func (p *Perfume) ApplyOverrides(overrides map[string]any) {
	for key, value := range overrides {
		switch key {
		case "name":
			if v, ok := value.(string); ok {
				p.Name = v
			}
		case "brand":
			if v, ok := value.(string); ok {
				p.Brand = v
			}
		case "family":
			if v, ok := value.(string); ok {
				p.Family = v
			}
		case "description":
			if v, ok := value.(string); ok {
				p.Description = v
			}
		case "year":
			if v, ok := toInt(value); ok {
				p.Year = &v
			}
		case "image_url":
			if v, ok := value.(string); ok {
				p.ImageURL = v
			}
		case "cloudinary_public_id":
			if v, ok := value.(string); ok {
				p.ImagePublicID = v
			}
		case "ai_confidence":
			if v, ok := value.(float64); ok {
				p.AIConfidence = v
			}
		}
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
