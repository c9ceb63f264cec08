package item

import "fmt"

// Kind discriminator shared by all variants stored in the items table
type Kind string

const (
	KindBook  Kind = "B"
	KindAlbum Kind = "A"
	KindMovie Kind = "M"
)

// Details kind-specific payload of an item
type Details interface {
	Kind() Kind
	Describe() string
}

// Book book variant
type Book struct {
	Author string
	ISBN   string
}

func (Book) Kind() Kind { return KindBook }

func (b Book) Describe() string {
	return fmt.Sprintf("book by %s (isbn %s)", b.Author, b.ISBN)
}

// Album album variant
type Album struct {
	Artist string
	Etc    string
}

func (Album) Kind() Kind { return KindAlbum }

func (a Album) Describe() string {
	return fmt.Sprintf("album by %s", a.Artist)
}

// Movie movie variant
type Movie struct {
	Director string
	Actor    string
}

func (Movie) Kind() Kind { return KindMovie }

func (m Movie) Describe() string {
	return fmt.Sprintf("movie directed by %s, starring %s", m.Director, m.Actor)
}
