// Package harness runs dashboard query scenarios.
//
// A scenario names a listings source (or inlines a few rows), builds a
// snapshot from it and runs a list of named dashboard queries, checking each
// result against its expectations. The full set of results can also be
// compared against a golden file.
//
// # Scenario Format
//
//	name: landing
//	description: "Landing view panels"
//	source: ../listings.csv        # relative to the scenario file
//	records:                       # or inline rows instead of source
//	  - { title: Data Analyst, salary: Not specified, location: Anywhere, platform: Indeed }
//	taxonomy: ../taxonomy.yaml     # optional; built-in tables otherwise
//	settings: { top_titles: 10, top_platforms: 6, bin_width: 10000 }
//	queries:
//	  - query: platforms
//	    expect:
//	      labels: [LinkedIn, Indeed, Others]
//	      total: 8
//	  - query: categories
//	    args: { field: level, category: Senior Data Analysts }
//	    expect: { count: 3 }
//	  - query: pie
//	    expect: { error: unknown query }
//
// # Expectations
//
//   - labels: ordered series labels, histogram groups or location values
//   - values: ordered series values
//   - total: series total, scalar result, or number of listings
//   - count: number of points, groups, listings or tables
//   - error: substring the query error must contain
//
// # Golden Files
//
// Golden output holds the scenario name and every query outcome in order,
// rendered as indented JSON. It excludes the snapshot ID so that golden
// files are stable across encoding changes that do not alter results.
package harness
