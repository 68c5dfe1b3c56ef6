package event

import "encoding/json"

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// In-process events already carry the typed struct; events relayed over redis carry a map.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
