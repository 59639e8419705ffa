// Package transform implements the per-article transformation pipeline:
// redirect classification, title extraction, link rewriting and image
// collection.
//
// The stages are pure; only Transformer performs I/O, through a
// ports.ArticleWriter. Markup is tokenized once with the
// streaming tokenizer from golang.org/x/net/html; the raw bytes of every token
// are retained so that markup the pipeline does not touch round-trips
// byte-for-byte. No tree is built and no HTML normalization is attempted.
package transform
