package usecase

import "encoding/json"

// CaptureRequest copies the JSON form of payload into target so the exact
// outbound request can be stored for audit. Null fields are dropped, so a
// schema-less store never receives them.
//
// target is only written when it is non-nil and empty; a populated buffer
// belongs to the caller and is left as is.
func CaptureRequest(target map[string]any, payload any) error {
	if target == nil || len(target) > 0 {
		return nil
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	for k, v := range fields {
		if v == nil {
			continue
		}
		target[k] = v
	}
	return nil
}
