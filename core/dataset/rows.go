package dataset

// File names of the tables.
const (
	CharactersFile      = "cleaned_characters.csv"
	ComicsFile          = "cleaned_comics.csv"
	FinalResultsFile    = "final_results.csv"
	VerifiedResultsFile = "verified_results.csv"
)

// CharacterRow is one cleaned character.
type CharacterRow struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ComicsCount int    `json:"comics_count"`
}

// ComicRow is one (comic, involved character) pair.
type ComicRow struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	CharacterID int    `json:"characters_id_involved"`
}

// ResultRow is one aggregated character.
type ResultRow struct {
	Name        string `json:"name"`
	CharacterID int    `json:"character_id"`
	// ComicsCount is the count reported by the API.
	ComicsCount int `json:"comics_count"`
	// CountCalculated is the number of cleaned comic rows joining to the character.
	CountCalculated int `json:"count_calculated"`
	// Difference is ComicsCount - CountCalculated.
	Difference int `json:"difference"`
}
