// Package query holds the result model of the SELECT rewrite planner.
//
// A SelectContext describes a parsed statement (projection, tables, ordering,
// grouping and distinctness) together with the rewrite tokens a downstream
// rewriter applies to the original SQL text:
//
//   - TableToken marks each occurrence of a logical table name. The rewriter
//     replaces len(Original) bytes at BeginPosition with the physical table.
//   - ItemsToken lists the derived columns (AVG decomposition, sort and group
//     columns missing from the projection) appended at the end of the select list.
//
// All offsets refer to the original SQL, so tokens must be applied in a single
// pass against it, never against an already edited copy.
package query
