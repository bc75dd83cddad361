// Package warehouse loads the cleaned and aggregated tables into a relational database.
//
// Every load replaces the previous content of the tables inside one transaction, so the
// database always mirrors a single complete run.
package warehouse
