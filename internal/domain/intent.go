package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// IntentType enumerates the closed set of classified intents the dispatcher
// accepts. clarification and general_question are answered upstream by the
// classifier and pass through the engine as no-ops.
type IntentType string

const (
	IntentShiftTimes      IntentType = "shift_times"
	IntentSwapActivity    IntentType = "swap_activity"
	IntentAddActivity     IntentType = "add_activity"
	IntentRemoveActivity  IntentType = "remove_activity"
	IntentExtendFreeTime  IntentType = "extend_free_time"
	IntentReorderDay      IntentType = "reorder_day"
	IntentChangeMeal      IntentType = "change_restaurant"
	IntentAdjustDuration  IntentType = "adjust_duration"
	IntentAddDay          IntentType = "add_day"
	IntentClarification   IntentType = "clarification"
	IntentGeneralQuestion IntentType = "general_question"
)

// intentValidate is the validator instance for the intent envelope.
var intentValidate = validator.New()

// IntentParams carries the operator-specific parameters of an intent
// envelope. Which fields are meaningful depends on the intent type; the
// operators ignore the rest.
type IntentParams struct {
	DayNumbers       []int  `json:"dayNumbers,omitempty" validate:"omitempty,dive,gte=1"`
	TargetActivity   string `json:"targetActivity,omitempty"`
	TargetItemID     string `json:"targetItemId,omitempty"`
	NewValue         string `json:"newValue,omitempty"`
	TimeShiftMinutes int    `json:"timeShift,omitempty"`
	Direction        string `json:"direction,omitempty" validate:"omitempty,oneof=earlier later extend shrink"`
	Scope            string `json:"scope,omitempty" validate:"omitempty,oneof=morning_only afternoon_only full_day"`
	MealType         string `json:"mealType,omitempty" validate:"omitempty,oneof=breakfast lunch dinner"`
	CuisineType      string `json:"cuisineType,omitempty"`
	DurationMinutes  int    `json:"duration,omitempty"`
	InsertAfterDay   int    `json:"insertAfterDay,omitempty"`
}

// Intent is the classified envelope produced by the external
// natural-language classifier. The engine never interprets raw text; it
// trusts Type and Parameters as classified.
type Intent struct {
	Type        IntentType   `json:"type" validate:"required,oneof=shift_times swap_activity add_activity remove_activity extend_free_time reorder_day change_restaurant adjust_duration add_day clarification general_question"`
	Confidence  float64      `json:"confidence" validate:"gte=0,lte=1"`
	Parameters  IntentParams `json:"parameters"`
	Explanation string       `json:"explanation,omitempty"`
}

// Validate checks the envelope against the closed intent enum and the
// parameter ranges. Violations are reported as ErrValidation so handlers
// can map them to HTTP 422.
func (in *Intent) Validate() error {
	if err := intentValidate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return nil
}
