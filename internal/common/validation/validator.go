package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"jobezie-workers/internal/common/errors"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

// Validator checks job variables against the input schema registered for
// each task type before anything reaches the scoring engine.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every schema up front so a bad registry fails at
// startup instead of on the first job.
func NewValidator(schemas map[string]map[string]interface{}) (*Validator, error) {
	compiled := make(map[string]*gojsonschema.Schema, len(schemas))
	for taskType, raw := range schemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", taskType, err)
		}
		compiled[taskType] = schema
	}
	return &Validator{schemas: compiled}, nil
}

// Validate returns an INPUT_VALIDATION_FAILED error listing every violation.
// Task types without a schema pass.
func (v *Validator) Validate(taskType string, vars map[string]interface{}) error {
	if v == nil {
		return nil
	}
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(vars))
	if err != nil {
		return errors.NewInvalidJobVariablesError(err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return errors.NewInputValidationError(strings.Join(msgs, "; ")).
		WithMetadata("taskType", taskType).
		WithMetadata("violations", len(msgs))
}

// Decode copies job variables into out using its json tags. RFC 3339 strings
// decode into time.Time fields.
func Decode(vars map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			emptyStringToZeroTime,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := decoder.Decode(vars); err != nil {
		return errors.NewInvalidJobVariablesError(err)
	}
	return nil
}

// ValidateAndDecode is the usual entry point for a handler.
func (v *Validator) ValidateAndDecode(taskType string, vars map[string]interface{}, out interface{}) error {
	if err := v.Validate(taskType, vars); err != nil {
		return err
	}
	return Decode(vars, out)
}

func emptyStringToZeroTime(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf(time.Time{}) && data.(string) == "" {
		return time.Time{}, nil
	}
	return data, nil
}
