// Package errors provides the structured error type used across doodle-garden.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// optional metadata:
//
//	err := errors.NotFound("creature not found").
//	    WithMeta("creature_id", id)
//
// Codes map onto the garden's failure taxonomy:
//   - FailedPrecondition: a drawing session with no strokes was finished or
//     submitted for growth
//   - NotFound: a creature id is not in the roster (unknown entry, selection error)
//   - DataLoss: the stored roster record could not be decoded
//   - InvalidArgument: bad input or configuration, usually built with
//     NewValidationBuilder
//   - Internal / Unavailable: the backing store failed or is unreachable
//
// Wrapping keeps the original code:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to persist roster")
//	}
//
// Checking:
//
//	if errors.IsNotFound(err) {
//	    // unknown creature
//	}
package errors
