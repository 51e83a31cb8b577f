// Package roster implements the on-call assignment engine. Given persons
// with availability windows, a calendar skeleton of days to cover and an
// ordered subcontractor pool, it produces one assignment per day in a
// single greedy chronological pass, enforcing the consecutive-day rule,
// and reports shortfalls as warnings instead of aborting.
package roster
