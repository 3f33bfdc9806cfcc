// Package feedback handles feedback submission: validation,
// classification at write time, and persistence. Classification
// failures degrade to Unclassified and never block a write.
//
// The package also provides an in-memory FeedbackRepository used by
// tests and single-node dev mode.
package feedback
