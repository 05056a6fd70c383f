package domain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Apurer/order-registry/internal/shared/domainerrors"
)

// Stage is one step of the fulfilment lifecycle. The label doubles as the persisted form.
type Stage string

const (
	StageCreated          Stage = "Created"
	StageInProgress       Stage = "InProgress"
	StageReadyForDelivery Stage = "ReadyForDelivery"
	StageCompleted        Stage = "Completed"
)

var stageOrder = []Stage{StageCreated, StageInProgress, StageReadyForDelivery, StageCompleted}

var ErrTerminalStage = errors.New("order is already at its final stage")

// Stages lists every stage in lifecycle order.
func Stages() []Stage { return slices.Clone(stageOrder) }

// ParseStage accepts only an exact, case-sensitive label.
func ParseStage(label string) (Stage, error) {
	stage := Stage(label)
	if !slices.Contains(stageOrder, stage) {
		return "", fmt.Errorf("%w: %q", domainerrors.ErrInvalidStage, label)
	}
	return stage, nil
}

func (s Stage) String() string { return string(s) }

// StageContext tracks where an order is in the lifecycle. Only forward, single-step moves exist.
type StageContext struct {
	stage Stage
}

// NewStageContext starts at the initial stage.
func NewStageContext() StageContext {
	return StageContext{stage: stageOrder[0]}
}

// ParseStageContext restores a context from its persisted label.
func ParseStageContext(label string) (StageContext, error) {
	stage, err := ParseStage(label)
	if err != nil {
		return StageContext{}, err
	}
	return StageContext{stage: stage}, nil
}

// Stage returns the current stage; the zero context reports the initial stage.
func (c StageContext) Stage() Stage {
	if c.stage == "" {
		return stageOrder[0]
	}
	return c.stage
}

// IsTerminal reports whether no further stage exists.
func (c StageContext) IsTerminal() bool {
	return c.Stage() == stageOrder[len(stageOrder)-1]
}

// Advance moves to the next stage. At the terminal stage it fails and leaves the context unchanged.
func (c *StageContext) Advance() error {
	idx := slices.Index(stageOrder, c.Stage())
	if idx == len(stageOrder)-1 {
		return ErrTerminalStage
	}
	c.stage = stageOrder[idx+1]
	return nil
}

func (c StageContext) String() string { return c.Stage().String() }
