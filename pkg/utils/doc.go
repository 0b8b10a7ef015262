// Package utils provides common utility functions used throughout the shardkeeper codebase.
//
// # Identifier Utilities (identifier.go)
//
// SQL dialects quote identifiers differently: MySQL uses backticks, ANSI SQL,
// PostgreSQL and Oracle use double quotes and SQL Server uses square brackets.
// The rewrite planner has to compare names that may be quoted in one clause and
// bare in another, so these helpers normalize identifiers before comparison.
//
// ## ExactlyValue
//
// Removes all quoting characters from an identifier while preserving its case:
//
//	name := utils.ExactlyValue("`t_order`")
//	// Result: t_order
//
//	qualified := utils.ExactlyValue(`"o"."order_id"`)
//	// Result: o.order_id
//
// ## EqualIdentifiers
//
// Compares two identifiers ignoring quotes and case, which is how ORDER BY and
// GROUP BY items are matched against the select list and how JOIN predicates are
// matched against table names:
//
//	if utils.EqualIdentifiers("T_ORDER", "`t_order`") {
//		// same table
//	}
//
// ## IsQuoted
//
// Reports whether a literal is a single quoted identifier:
//
//	utils.IsQuoted("[t_order]")      // true
//	utils.IsQuoted("`db`.`t_order`") // false
package utils
