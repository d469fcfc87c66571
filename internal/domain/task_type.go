package domain

import "fmt"

type TaskType string

const (
	TypePrior  TaskType = "prior"
	TypeSimple TaskType = "simple"
)

func NewTaskType(t string) (TaskType, error) {
	switch t {
	case string(TypePrior), string(TypeSimple):
		return TaskType(t), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTaskType, t)
	}
}
