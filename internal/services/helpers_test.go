package services

import (
	"encoding/json"

	"gearguard/pkg/types"
)

func decodeJSON(body string, v interface{}) error {
	return json.Unmarshal([]byte(body), v)
}

func stageFilter(stage string) types.RequestFilter {
	return types.RequestFilter{Stage: stage}
}
