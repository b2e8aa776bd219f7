package recipe

// Item is a registered recipe: a display label and an image reference.
// The zero Item is not a valid registration.
type Item struct {
	label    string
	imageRef string
}

// Label returns the trimmed display label.
func (i Item) Label() string {
	return i.label
}

// ImageRef returns the trimmed image reference. The registry treats it as an
// opaque string; resolving it is the renderer's job.
func (i Item) ImageRef() string {
	return i.imageRef
}
