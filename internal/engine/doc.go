// Package engine implements the cascading filter over a fruit table.
//
// Filtering runs in three stages, each a pure function of its inputs:
//
//  1. [Search]: name substring plus category membership over the base table.
//  2. [Refine]: the same criteria with category selections narrowed to the
//     values present in the stage-1 result ([RefinementDomain]).
//  3. [RefineView]: a per-view pass over the stage-2 result by inclusive
//     date range, free text, and an optional sort by date.
//
// Every stage returns a new table and never grows its input: stage 3 is a
// subset of stage 2, which is a subset of stage 1. Empty results are a
// normal outcome and are returned as empty tables, never as errors.
//
// [Evaluate] recomputes the whole cascade for one interaction, the way the
// terminal UI and the query command use it.
package engine
