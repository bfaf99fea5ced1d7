// Package assign solves the rectangular minimum-cost assignment problem.
// It is used to pair extracted events with reference events so that the
// total pairing distance is minimal.
package assign
