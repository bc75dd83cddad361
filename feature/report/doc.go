// Package report serves the curated result tables as a read-only JSON API.
//
// The service parses final_results.csv and verified_results.csv from the curated
// directory and keeps the parsed snapshot in memory for a configurable TTL. Reloads
// after expiry go through a singleflight group so a burst of requests reads the
// files once.
//
// # Routes
//
//	GET /health
//	GET /results                 ?name=&limit=&offset=
//	GET /results/discrepancies   ?limit=&offset=
//	GET /results/summary
//	GET /results/:id
package report
