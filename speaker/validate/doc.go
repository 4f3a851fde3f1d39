// Package validate holds the error taxonomy and range checks shared by the
// simulator packages.
//
// Every validation failure is a [*ParameterError] carrying the parameter group
// ([Kind]), the offending field and a message. It matches
// [ErrInvalidParameters] through errors.Is; failures to derive a consistent
// Thiele-Small set also match [ErrInvalidDriverParameters].
//
//	if errors.Is(err, validate.ErrInvalidParameters) {
//		var pe *validate.ParameterError
//		errors.As(err, &pe)
//		fmt.Println(pe.Kind, pe.Field, pe.Message)
//	}
package validate
