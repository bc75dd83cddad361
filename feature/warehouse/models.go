package warehouse

import "comics-etl/core/dataset"

// characterRecord is one cleaned character row.
// RowID is a surrogate key since cleaned tables may repeat a character id.
type characterRecord struct {
	RowID       uint   `gorm:"column:row_id;primaryKey;autoIncrement"`
	CharacterID int    `gorm:"column:character_id;index"`
	Name        string `gorm:"column:name;size:255"`
	ComicsCount int    `gorm:"column:comics_count"`
}

// TableName overrides the table name.
func (characterRecord) TableName() string {
	return "characters"
}

// comicCharacterRecord is one exploded (comic, character) row.
type comicCharacterRecord struct {
	RowID       uint   `gorm:"column:row_id;primaryKey;autoIncrement"`
	ComicID     int    `gorm:"column:comic_id;index"`
	Title       string `gorm:"column:title;size:512"`
	CharacterID int    `gorm:"column:character_id;index"`
}

// TableName overrides the table name.
func (comicCharacterRecord) TableName() string {
	return "comic_characters"
}

// resultRecord is one aggregated character.
type resultRecord struct {
	RowID           uint   `gorm:"column:row_id;primaryKey;autoIncrement"`
	RunID           string `gorm:"column:run_id;size:36;index"`
	Name            string `gorm:"column:name;size:255"`
	CharacterID     int    `gorm:"column:character_id;index"`
	ComicsCount     int    `gorm:"column:comics_count"`
	CountCalculated int    `gorm:"column:count_calculated"`
	Difference      int    `gorm:"column:difference"`
}

// TableName overrides the table name.
func (resultRecord) TableName() string {
	return "aggregate_results"
}

// expectedColumns lists, per table, the columns Load writes.
var expectedColumns = map[string][]string{
	"characters":        {"row_id", "character_id", "name", "comics_count"},
	"comic_characters":  {"row_id", "comic_id", "title", "character_id"},
	"aggregate_results": {"row_id", "run_id", "name", "character_id", "comics_count", "count_calculated", "difference"},
}

func toCharacterRecords(rows []dataset.CharacterRow) []characterRecord {
	out := make([]characterRecord, len(rows))
	for i, r := range rows {
		out[i] = characterRecord{CharacterID: r.ID, Name: r.Name, ComicsCount: r.ComicsCount}
	}
	return out
}

func toComicRecords(rows []dataset.ComicRow) []comicCharacterRecord {
	out := make([]comicCharacterRecord, len(rows))
	for i, r := range rows {
		out[i] = comicCharacterRecord{ComicID: r.ID, Title: r.Title, CharacterID: r.CharacterID}
	}
	return out
}

func toResultRecords(runID string, rows []dataset.ResultRow) []resultRecord {
	out := make([]resultRecord, len(rows))
	for i, r := range rows {
		out[i] = resultRecord{
			RunID:           runID,
			Name:            r.Name,
			CharacterID:     r.CharacterID,
			ComicsCount:     r.ComicsCount,
			CountCalculated: r.CountCalculated,
			Difference:      r.ComicsCount - r.CountCalculated,
		}
	}
	return out
}
