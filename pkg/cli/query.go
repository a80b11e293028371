package cli

import (
	"context"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/bryanrite/att-speech/pkg/jsontree"
)

// Query runs a jq expression against v and collects every result.
// jsontree values are converted to plain Go values first.
func Query(ctx context.Context, expr string, v any) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression %q: %w", expr, err)
	}

	var results []any
	iter := query.RunWithContext(ctx, jsontree.Plain(v))
	for {
		out, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := out.(error); ok {
			if herr, ok := err.(*gojq.HaltError); ok && herr.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq %q: %w", expr, err)
		}
		results = append(results, out)
	}
	return results, nil
}
