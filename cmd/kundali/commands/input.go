package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yanqian/kundali/internal/domain/chart"
)

// parseRequests accepts a single JSON object or an array of objects.
func parseRequests(raw []byte) ([]chart.Request, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, errors.New("no birth data supplied")
	}

	dec := func(target any) error {
		d := json.NewDecoder(bytes.NewReader(trimmed))
		d.DisallowUnknownFields()
		return d.Decode(target)
	}

	switch trimmed[0] {
	case '{':
		var req chart.Request
		if err := dec(&req); err != nil {
			return nil, false, fmt.Errorf("parse birth data: %w", err)
		}
		return []chart.Request{req}, false, nil
	case '[':
		var reqs []chart.Request
		if err := dec(&reqs); err != nil {
			return nil, true, fmt.Errorf("parse birth data: %w", err)
		}
		if len(reqs) == 0 {
			return nil, true, errors.New("birth data array is empty")
		}
		return reqs, true, nil
	default:
		return nil, false, errors.New("birth data must be a JSON object or array")
	}
}
