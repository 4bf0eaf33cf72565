// Package token tokenizes the old-style plist dialect used by Xcode
// project manifests: brace-delimited objects, paren-delimited arrays,
// `key = value;` fields, and /* ... */ comment annotations.
//
// The tokenizer is an explicit scanner over a byte slice; it never uses
// regular expressions. Every token carries its byte offset and line/column
// so that parse errors can name their position. Comment tokens are emitted
// inline with the stream because the dialect uses them as cosmetic labels
// and as section markers.
package token
