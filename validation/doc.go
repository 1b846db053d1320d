// Package validation provides input validation utilities.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used for configuration; the programmatic form suits request handlers.
//
// # Struct Tag Validation
//
//	type noteRequest struct {
//	    Transcript string `validate:"required,min=2"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("transcript", req.Transcript)
//	err := v.Validate()
package validation
