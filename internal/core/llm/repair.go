package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/winnow-hq/winnow-api/internal/models"
)

var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// repairReply turns raw model output into a ChatReply. A markdown fence is
// stripped before parsing; if the remainder still isn't the expected JSON
// shape, the raw text becomes the reply and the structured fields stay empty.
// This never fails: malformed model output is a degraded reply, not an error.
func repairReply(raw string) models.ChatReply {
	text := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var parsed struct {
		AIResponse *string                `json:"aiResponse"`
		Options    []string               `json:"options"`
		JDData     map[string]interface{} `json:"jdData"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return models.ChatReply{
			AIResponse: text,
			Options:    []string{},
			JDData:     map[string]interface{}{},
		}
	}

	reply := models.ChatReply{
		Options: parsed.Options,
		JDData:  parsed.JDData,
	}
	if parsed.AIResponse != nil {
		reply.AIResponse = *parsed.AIResponse
	} else {
		reply.AIResponse = text
	}
	if reply.Options == nil {
		reply.Options = []string{}
	}
	if reply.JDData == nil {
		reply.JDData = map[string]interface{}{}
	}
	return reply
}
