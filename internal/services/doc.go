// Package services contains the business logic layer between transport and
// the reshape pipeline. Services orchestrate sourcing the wide projection
// table, running the reshape stages, and reporting run metrics.
package services
