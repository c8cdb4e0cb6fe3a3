package exception

import "fmt"

// RangeConflictError is returned when a create would overlap or nest with an
// annotation that already exists in the tree.
type RangeConflictError struct {
	*AppError
	AnnotationId string
}

func NewRangeConflictError(annotationId string) *RangeConflictError {
	return &RangeConflictError{
		AppError: &AppError{
			Code:    "RANGE_CONFLICT",
			Message: fmt.Sprintf("range intersects existing annotation '%s'", annotationId),
		},
		AnnotationId: annotationId,
	}
}

// AnchorLostError is returned when the tree node an operation targets cannot
// be located at call time, typically because an external actor removed it.
type AnchorLostError struct {
	*AppError
	AnnotationId string
}

func NewAnchorLostError(annotationId string) *AnchorLostError {
	return &AnchorLostError{
		AppError: &AppError{
			Code:    "ANCHOR_LOST",
			Message: fmt.Sprintf("annotation node '%s' is no longer reachable in the tree", annotationId),
		},
		AnnotationId: annotationId,
	}
}

type NotFoundError struct {
	*AppError
	AnnotationId string
}

func NewNotFoundError(annotationId string) *NotFoundError {
	return &NotFoundError{
		AppError: &AppError{
			Code:    "NOT_FOUND",
			Message: fmt.Sprintf("annotation with id '%s' does not exist", annotationId),
		},
		AnnotationId: annotationId,
	}
}

type InvalidOffsetsError struct {
	*AppError
	Start int
	End   int
}

func NewInvalidOffsetsError(start int, end int) *InvalidOffsetsError {
	return &InvalidOffsetsError{
		AppError: &AppError{
			Code:    "INVALID_OFFSETS",
			Message: fmt.Sprintf("offsets [%d, %d) are not a valid span", start, end),
		},
		Start: start,
		End:   end,
	}
}
