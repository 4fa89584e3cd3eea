// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petar-djukic/repobrief/pkg/types"
)

// ParseSummary decodes the model's response into a RepoSummary. Models
// occasionally wrap the JSON in markdown fences despite instructions;
// those are stripped before decoding. All three fields are required;
// a scalar technologies value is coerced to a single-element list.
func ParseSummary(raw string) (*types.RepoSummary, error) {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "```") {
		parts := strings.SplitN(raw, "```", 3)
		if len(parts) >= 2 {
			raw = parts[1]
		}
		raw = strings.TrimPrefix(raw, "json")
		raw = strings.TrimSpace(raw)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: non-JSON response: %v", ErrLLMFailure, err)
	}

	for _, required := range []string{"summary", "technologies", "structure"} {
		if _, ok := fields[required]; !ok {
			return nil, fmt.Errorf("%w: response missing required field %q", ErrLLMFailure, required)
		}
	}

	result := &types.RepoSummary{}
	if err := json.Unmarshal(fields["summary"], &result.Summary); err != nil {
		return nil, fmt.Errorf("%w: summary is not a string: %v", ErrLLMFailure, err)
	}
	if err := json.Unmarshal(fields["structure"], &result.Structure); err != nil {
		return nil, fmt.Errorf("%w: structure is not a string: %v", ErrLLMFailure, err)
	}

	if err := json.Unmarshal(fields["technologies"], &result.Technologies); err != nil {
		// Tolerate a single scalar instead of a list.
		var single string
		if err := json.Unmarshal(fields["technologies"], &single); err != nil {
			return nil, fmt.Errorf("%w: technologies is not a string list: %v", ErrLLMFailure, err)
		}
		result.Technologies = []string{single}
	}

	return result, nil
}
