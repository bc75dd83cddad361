// Package dataset defines the flat tables the pipeline produces and their CSV form.
//
// # Tables
//
//   - cleaned_characters.csv: index, id, name, comics_count
//   - cleaned_comics.csv: index, id, title, characters_id_involved
//   - final_results.csv: name, character_id, comics_count, count_calculated
//   - verified_results.csv: final_results columns plus difference
//
// Writers are deterministic: the same rows always produce the same bytes.
package dataset
