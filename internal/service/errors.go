package service

import "errors"

var (
	ErrValidation       = errors.New("invalid input")
	ErrTemplateNotFound = errors.New("template not found")
	ErrJobTypeNotFound  = errors.New("job type not found")
	ErrWorkItemNotFound = errors.New("work item not found")
)
