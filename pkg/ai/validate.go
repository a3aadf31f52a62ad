package ai

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// judgeResponseSchema pins the shape contract of the judge response: all four
// score keys, all four feedback keys, and the corrections object must be
// present or the response is rejected. Score values themselves are not
// range-checked here; out-of-policy numbers pass through to rounding.
const judgeResponseSchema = `{
    "type": "object",
    "required": ["scores", "feedback", "corrections"],
    "properties": {
        "scores": {
            "type": "object",
            "required": ["task_achievement", "coherence_cohesion", "lexical_resource", "grammatical_range"],
            "properties": {
                "task_achievement": {"type": "number"},
                "coherence_cohesion": {"type": "number"},
                "lexical_resource": {"type": "number"},
                "grammatical_range": {"type": "number"}
            }
        },
        "feedback": {
            "type": "object",
            "required": ["task_achievement", "coherence_cohesion", "lexical_resource", "grammatical_range"],
            "properties": {
                "task_achievement": {"type": "string"},
                "coherence_cohesion": {"type": "string"},
                "lexical_resource": {"type": "string"},
                "grammatical_range": {"type": "string"}
            }
        },
        "corrections": {"type": "object"}
    }
}`

var compiledJudgeSchema = jsonschema.MustCompileString("judge_response.json", judgeResponseSchema)

func parseJudgeResponse(content string) (JudgeResult, error) {
	var document interface{}
	if err := json.Unmarshal([]byte(content), &document); err != nil {
		return JudgeResult{}, fmt.Errorf("%w: %v", ErrMalformedJudgeResponse, err)
	}

	if err := compiledJudgeSchema.Validate(document); err != nil {
		return JudgeResult{}, fmt.Errorf("%w: %v", ErrMalformedJudgeResponse, err)
	}

	var result JudgeResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return JudgeResult{}, fmt.Errorf("%w: %v", ErrMalformedJudgeResponse, err)
	}

	return result, nil
}
