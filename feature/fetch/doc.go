// Package fetch drains a paged API collection into raw page files on disk.
//
// The loop requests pages of a fixed size, starting at offset 0, and stops once the
// offset passes the total the server reported on the first page. A fixed delay is
// observed before every request, the first one included. Each page is written as a
// JSON array named {kind}_{offset}_{ddmmyyyy_hhmmss}.json with every record stamped
// with a current_timestamp field.
//
// There is no retry: the first failed request ends the stage with a typed error and
// the files written so far are left in place.
package fetch
