package errors

import "github.com/pipe01/tagstream/tokenizer"

// SituatedErr is an error that points at a place in a document.
type SituatedErr interface {
	error
	Unwrap() error
	At() tokenizer.Location
}
