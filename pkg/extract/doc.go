// Package extract pulls the readable text out of a news article and scores
// its terms.
//
// [MainText] keeps only paragraph text, [Keywords] ranks unigrams and
// bigrams by frequency after stop-word removal, and [Extractor] ties both to
// an HTTP download.
package extract
