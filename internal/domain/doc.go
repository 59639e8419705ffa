// Package domain contains the core entities and value objects for gwiki.
//
// This package represents the innermost layer of the application. It has
// no dependencies on infrastructure concerns (file system, logging, CLI) and
// contains only the article model and its invariants.
//
// # Entities
//
//   - [RawArticle]: an article file as read from the dump
//   - [ArticleResult]: the outcome of transforming one article
//   - [ValidityIndex]: the closed set of identifiers links are checked against
//   - [Report]: the batch summary written at the end of a run
//
// # Invariants
//
// A redirect result never carries images and is never processed. A result
// with an error is never processed. The rewritten body of an article is
// written if and only if its result is processed.
package domain
