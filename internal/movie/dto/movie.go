package dto

type MovieInput struct {
	Title       string   `json:"title"`
	Director    string   `json:"director"`
	Studio      string   `json:"studio"`
	Cast        []string `json:"movieCast"`
	ReleaseYear int      `json:"releaseYear"`
}

type MovieOutput struct {
	ID          int      `json:"movieId"`
	Title       string   `json:"title"`
	Director    string   `json:"director"`
	Studio      string   `json:"studio"`
	Cast        []string `json:"movieCast"`
	ReleaseYear int      `json:"releaseYear"`
	Poster      string   `json:"poster"`
	PosterURL   string   `json:"posterUrl"`
}

type MoviePageOutput struct {
	Movies        []MovieOutput `json:"movies"`
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	TotalElements int           `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	IsLast        bool          `json:"isLast"`
}
