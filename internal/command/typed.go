package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// Typed adapts a function taking decoded arguments into a Handler. Empty or
// null args decode as the zero value of A.
func Typed[A any, R any](fn func(context.Context, A) (R, error)) Handler {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args A
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			if err := json.Unmarshal(trimmed, &args); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrBadArgs, err)
			}
		}
		result, err := fn(ctx, args)
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// Args encodes v as a command payload. It panics if v cannot be encoded,
// which only happens for values such as channels or funcs.
func Args(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("command: encode args: %v", err))
	}
	return data
}
