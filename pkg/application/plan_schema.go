package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
)

// ErrPlanShape indicates backend output that does not describe a complete plan.
var ErrPlanShape = errors.New("plan output does not match schema")

const planSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["tasks", "estimatedTime", "breakdown", "techRecommendations", "resources"],
  "properties": {
    "tasks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name", "description", "priority", "estimatedDuration"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "description": { "type": "string" },
          "priority": { "enum": ["Low", "Medium", "High"] },
          "estimatedDuration": { "type": "string" }
        }
      }
    },
    "estimatedTime": { "type": "string", "minLength": 1 },
    "breakdown": { "type": "string", "minLength": 1 },
    "techRecommendations": {
      "type": "array",
      "minItems": 1,
      "items": { "type": "string" }
    },
    "resources": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "url", "description"],
        "properties": {
          "title": { "type": "string" },
          "url": { "type": "string" },
          "description": { "type": "string" }
        }
      }
    }
  }
}`

var planSchemaLoader = gojsonschema.NewStringLoader(planSchemaJSON)

// decodePlan validates a JSON candidate against the plan schema and decodes it.
func decodePlan(candidate string) (*planning.ProjectPlan, error) {
	candidate = strings.TrimSpace(candidate)
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("%w: candidate is not valid JSON", ErrPlanShape)
	}

	result, err := gojsonschema.Validate(planSchemaLoader, gojsonschema.NewStringLoader(candidate))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanShape, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrPlanShape, strings.Join(msgs, "; "))
	}

	var plan planning.ProjectPlan
	if err := json.Unmarshal([]byte(candidate), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanShape, err)
	}
	if !plan.IsComplete() {
		return nil, fmt.Errorf("%w: incomplete plan", ErrPlanShape)
	}
	return &plan, nil
}
