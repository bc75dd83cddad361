// Package archive mirrors pipeline output directories into an object storage bucket.
//
// Raw page files are immutable once written, so objects that already exist under the
// target prefix are skipped. Result tables are always overwritten.
package archive
