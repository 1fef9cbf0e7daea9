package deps

import "fmt"

// ParseError reports manifest content that a structured-syntax extractor
// could not decode. Line-oriented extractors never return it.
type ParseError struct {
	File string // Manifest filename, e.g. "package.json"
	Err  error  // Underlying decoder error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
