// Package analytics computes every rollup view (metrics, distributions,
// trends, comparisons, engagement, recent activity) from the feedback
// record store. Each view is a pure read-only reduction over the
// scope-filtered record set; the tenant capability check happens once,
// up front, and is never duplicated per metric.
package analytics
