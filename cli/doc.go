// Package cli implements the gosmt command line: the train command
// estimates IBM Model 1 translation probabilities from a parallel
// corpus and the translate command looks up the words of a test corpus
// in a trained model.
package cli
