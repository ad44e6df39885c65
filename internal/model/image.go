package model

// Image is a resolved local image reference.
type Image struct {
	// Source is the reference as written in frontmatter.
	Source string
	// Path is the resolved file on disk.
	Path   string
	Format string
	Width  int
	Height int
	// Src is the public URL, set once the file is published.
	Src string
}
