// Package pkg holds the wordsphere libraries.
//
// wordsphere turns a news article into a cloud of keywords placed on a
// sphere. The data flows in one direction:
//
//	article URL
//	     ↓
//	[extract]   fetch HTML, keep paragraph text, rank unigrams and bigrams
//	     ↓
//	[pipeline]  cache, assign an ID, record history ([cache], [store])
//	     ↓
//	[server]    POST /analyze → {"words": [...]}
//	     ↓
//	[analysis]  client side: one request per submission
//	     ↓
//	[shell]     UI state: url, loading, error, words
//	     ↓
//	[cloud]     sphere positions, sizes, gradient colors
//	     ↓
//	[render]    JSON scene, SVG snapshot, top-words overlay
//
// Supporting packages: [keyword] (shared data model), [errors] (coded
// errors), [httputil] (fetch with retry), [config], [observability]
// (metrics hooks) and [buildinfo].
package pkg
