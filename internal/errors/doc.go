// Package errors provides structured errors for the combat tracker.
//
// Every error carries a Code that callers branch on instead of matching
// messages:
//
//   - CodeInvalidArgument: bad user input (blank names, non-numeric hit points)
//   - CodeNotFound: a battle, character or creature does not exist
//   - CodeUnavailable: the backing store could not be reached or failed
//
// Creating errors:
//
//	err := errors.NotFoundf("battle %d not found", id)
//	err := errors.InvalidArgument("name is required").WithMeta("field", "name")
//
// Wrapping store failures:
//
//	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
//	    return nil, errors.Transport(err, "failed to save battle")
//	}
//
// Transport keeps the code of an already structured error and marks anything
// else as Unavailable. Wrap keeps the code and defaults plain errors to
// Internal.
//
// Checking:
//
//	if errors.IsNotFound(err) {
//	    // surface to the user
//	}
//
// Validation:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
package errors
