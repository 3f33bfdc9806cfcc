// Package emotion implements the trained emotion classification
// pipeline: model artifact loading, TF-IDF feature extraction, the
// multinomial naive Bayes classifier, and the classification service
// with its low-confidence fallback policy.
//
// The artifact is immutable after load and held behind an atomic
// pointer, so concurrent classification needs no locking and hot swaps
// are safe: in-flight calls keep the artifact they started with.
package emotion
