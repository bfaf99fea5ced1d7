// Package score reconciles extracted calendar events against reference
// expectations. It pairs candidates with references by minimum-cost
// assignment, classifies each pair within a tolerance profile, and exposes
// two consumption modes over the same core: soft scoring (precision, recall,
// F1 with per-event detail records) and hard assertion (a single aggregated
// error listing every violation).
package score
