// Package aggregate cross-validates each character's reported comics count against
// the comics actually observed in the cleaned comics table.
//
// The characters table is inner-joined to the comics table on
// characters.id = comics.characters_id_involved and grouped by
// (name, character id, comics_count). The group size is count_calculated.
// Characters without any joining comic rows do not appear in the output.
//
// # Outputs
//
//   - final_results.csv: every group.
//   - verified_results.csv: groups whose difference (comics_count - count_calculated)
//     is strictly positive, i.e. characters whose comics were not fully observed.
//
// Groups where more comics were observed than reported are not written to the
// discrepancy table; they are counted in Summary.Overcounted and logged.
package aggregate
