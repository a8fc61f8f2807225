// Package batch loads and runs multi-request synthesis jobs.
//
// A job file lists synthesis requests in YAML or CUE:
//
//	parallelism: 4
//	requests:
//	  - name: d3-logical-x
//	    distance: 3
//	    logical: [X]
//	  - name: d5-legacy
//	    distance: 5
//	    compat:
//	      kind_dispatch: true
//
// CUE files are unified with an embedded schema before decoding, so
// constraint violations are reported with CUE positions. Both forms are
// then checked with struct validation tags.
//
// Run synthesizes requests concurrently and returns results in request
// order. A failing request does not stop the others.
package batch
