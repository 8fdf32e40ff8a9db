// Package errors provides structured error handling for the dune-api project.
//
// Errors carry a code, a human-readable message, and optional metadata, and
// convert cleanly to gRPC status errors and HTTP status codes so boundary
// layers can translate them without inspecting messages.
//
// The engine maps its failure kinds onto codes as follows:
//
//   - type errors (a value cannot be coerced to the required shape) use
//     CodeInvalidArgument
//   - range errors (structurally plausible, fails a domain invariant) use
//     CodeOutOfRange
//   - duplicate-entity errors use CodeAlreadyExists
//   - assertion errors (violated internal invariants) use CodeInternal
//
// Creating errors:
//
//	err := errors.InvalidArgumentf("talent argument %d rejected", i)
//	err := errors.AlreadyExists("duplicate trait").WithMeta("index", i)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load character")
//	}
//
// Accumulating validation errors instead of failing fast:
//
//	vb := errors.NewValidationBuilder()
//	vb.RequiredField("Name")
//	return vb.Build()
package errors
