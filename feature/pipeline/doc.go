// Package pipeline wires the stages into one batch run.
//
// A run lays out the data tree, optionally fetches fresh pages, cleanses characters
// and comics, aggregates them and optionally publishes the outputs:
//
//	layout → [fetch characters] → cleanse characters → [fetch comics] → cleanse comics → aggregate → [publish]
//
// Every stage is also callable on its own and returns a StageResult. Stages that need
// a table the current run has not produced read it from the stage directory, so
// "aggregate" works after a previous "cleanse". Run stops at the first failed stage.
//
// Each Pipeline carries a run id that is attached to every log line and stored with
// the results loaded into the warehouse.
package pipeline
