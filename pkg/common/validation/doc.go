// Package validation provides common validation utilities for configuration
// parameters across the streamio library.
//
// Constructors use these helpers so that a bad chunk size, a negative declared
// length or a missing Redis key all surface as *errors.ValidationError with a
// consistent message.
package validation
