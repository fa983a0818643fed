package ports

// Normalizer defines the interface for text normalization.
// Implementations must be pure and safe for concurrent use.
type Normalizer interface {
	Normalize(text string) string
}
