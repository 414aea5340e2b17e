// Package errors provides the error taxonomy for entry-notation parsing and
// collection validation.
//
// Every failure is an *Error carrying an ErrorType, the offending raw text,
// the source location when known and an optional suggestion.
//
// # Error Types
//
// Parse errors (one notation line is rejected):
// empty_input, mismatched_brackets, malformed_annotation, missing_headword_text,
// empty_annotation_block, empty_annotation_key, empty_annotation_value,
// invalid_annotation_key, invalid_annotation_value, invalid_headword,
// empty_sub_entry, invalid_sub_entry, malformed_redirection, empty_redirect_target,
// line_too_long
//
// Builder misuse: invalid_state, invalid_redirect
//
// Collection validation: duplicate_headword, role_conflict,
// circular_dependency, circular_redirection
//
// Source boundary: file_not_found, permission_denied, io_failure
//
// # Basic Usage
//
// Branch on the kind of a returned error:
//
//	if errors.KindOf(err) == errors.ErrorTypeMismatchedBrackets {
//	    ...
//	}
//
// Accumulate multiple errors:
//
//	errList := errors.NewErrorList()
//	errList.AddError(errors.ErrorTypeDuplicateHeadword, "Duplicate headword 'run'", loc)
//	if errList.HasErrors() {
//	    return errList.ToError()
//	}
//
// # Error Format
//
//	[mismatched_brackets] Unbalanced annotation brackets (1 '[' vs 0 ']')
//	  --> words.lex:12
//	  |
//	  -> 12 | run[sp:ran
//	  |
//	  = suggestion: Close the annotation block with ']'
package errors
