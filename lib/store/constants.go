package store

const AnnotationDoesNotExistError = "annotation not found"
