package scoring

import "strings"

// PipelineStage is the closed set of Kanban columns a recruiter moves through.
type PipelineStage string

const (
	StageNew          PipelineStage = "new"
	StageResearching  PipelineStage = "researching"
	StageContacted    PipelineStage = "contacted"
	StageResponded    PipelineStage = "responded"
	StageInterviewing PipelineStage = "interviewing"
	StageOffer        PipelineStage = "offer"
	StageAccepted     PipelineStage = "accepted"
	StageDeclined     PipelineStage = "declined"
)

type stageInfo struct {
	column     int
	multiplier float64
	color      string
	terminal   bool
}

// stages is the only place stage behavior is defined. Board ordering,
// column color and the priority multiplier all read from it.
var stages = map[PipelineStage]stageInfo{
	StageNew:          {column: 0, multiplier: 1.0, color: "gray"},
	StageResearching:  {column: 1, multiplier: 0.8, color: "blue"},
	StageContacted:    {column: 2, multiplier: 1.2, color: "yellow"},
	StageResponded:    {column: 3, multiplier: 1.5, color: "green"},
	StageInterviewing: {column: 4, multiplier: 1.3, color: "purple"},
	StageOffer:        {column: 5, multiplier: 0.5, color: "teal"},
	StageAccepted:     {column: 6, multiplier: 0.1, color: "emerald", terminal: true},
	StageDeclined:     {column: 7, multiplier: 0.1, color: "red", terminal: true},
}

// Stages returns every stage in board column order.
func Stages() []PipelineStage {
	out := make([]PipelineStage, len(stages))
	for s, info := range stages {
		out[info.column] = s
	}
	return out
}

// ParsePipelineStage reports whether s names a known stage.
func ParsePipelineStage(s string) (PipelineStage, bool) {
	stage := PipelineStage(strings.ToLower(strings.TrimSpace(s)))
	_, ok := stages[stage]
	return stage, ok
}

// Valid reports whether the stage is part of the closed set.
func (s PipelineStage) Valid() bool {
	_, ok := stages[s]
	return ok
}

// Multiplier is the priority status multiplier; unknown stages are neutral.
func (s PipelineStage) Multiplier() float64 {
	if info, ok := stages[s]; ok {
		return info.multiplier
	}
	return 1.0
}

// Color is the board column color.
func (s PipelineStage) Color() string {
	return stages[s].color
}

// Column is the zero-based board column, -1 for unknown stages.
func (s PipelineStage) Column() int {
	if info, ok := stages[s]; ok {
		return info.column
	}
	return -1
}

// Terminal reports whether no further follow-up is expected.
func (s PipelineStage) Terminal() bool {
	return stages[s].terminal
}
