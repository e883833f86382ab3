package assets

// DefaultStyleName is the style applied when none is configured.
const DefaultStyleName = "invoice"

// StyleLoader loads a CSS style by name (without the .css extension).
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}
