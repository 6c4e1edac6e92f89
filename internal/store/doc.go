// Package store keeps the raw funding table in an in-memory SQLite database
// so ad hoc SQL can run against it, the way the dashboard's query panel
// does. Rows are loaded once from the raw dataset and never modified.
package store
