// Package cleanse flattens raw page files into the cleaned character and comic tables.
//
// All page files of a directory are read in file-name order and their records
// concatenated. Characters are projected to (id, name, comics_count). Comics whose
// character availability is zero are dropped; the rest are exploded into one row
// per involved character id, taken from the last segment of each character URI.
//
// A record missing an expected field aborts the stage with a shape error naming the
// page file and record position. Duplicates across page files survive unless the
// cleanser is built with dedupe enabled.
package cleanse
