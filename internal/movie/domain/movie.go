package domain

type Movie struct {
	ID          int
	Title       string
	Director    string
	Studio      string
	Cast        []string
	ReleaseYear int
	Poster      string
}
