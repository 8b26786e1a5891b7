package domain

import "time"

// Perfume is the catalog record persisted by the record store. ID and
// CreatedAt are assigned by the database, never by this system.
type Perfume struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Brand         string    `json:"brand"`
	Family        string    `json:"family"`
	Description   string    `json:"description"`
	Year          *int      `json:"year,omitempty"`
	ImageURL      string    `json:"image_url"`
	ImagePublicID string    `json:"cloudinary_public_id"`
	AIConfidence  float64   `json:"ai_confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// Ingredient is a catalog entry for a single perfume ingredient.
type Ingredient struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Analysis is the analyzer's best-effort structured guess for a stored
// image. It is flattened into a Perfume on success, never persisted on
// its own.
type Analysis struct {
	Brand         string   `json:"brand"`
	Name          string   `json:"name"`
	Family        string   `json:"family"`
	Description   string   `json:"description"`
	Confidence    float64  `json:"confidence"`
	Year          *int     `json:"year,omitempty"`
	SuggestedTags []string `json:"suggested_tags,omitempty"`
}

// FetchedAsset is the raw payload retrieved from a source URL. It lives
// for a single workflow run and is discarded once the image store
// accepts it.
type FetchedAsset struct {
	Data        []byte
	Filename    string
	ContentType string
}

// StoredImage describes an object accepted by the image store. The
// provider id is what a future edit or delete would address; deletion
// itself is out of scope here.
type StoredImage struct {
	PublicURL string `json:"public_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Format    string `json:"format,omitempty"`
}
