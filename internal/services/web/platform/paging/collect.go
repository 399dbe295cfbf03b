// Package paging walks cursor-linked result pages.
package paging

import (
	"context"
	"fmt"
	"strings"
)

// Fetch loads one page. An empty cursor requests the first page; an empty
// next cursor ends the walk.
type Fetch[R any] func(ctx context.Context, cursor string) (items []R, next string, err error)

// Collect follows next cursors until the last page, or maxPages pages when
// maxPages is positive, keeping items for which keep returns true.
func Collect[T any, R any](ctx context.Context, maxPages int, fetch Fetch[R], keep func(R) (T, bool)) ([]T, error) {
	if fetch == nil {
		return nil, fmt.Errorf("page fetcher is required")
	}
	var result []T
	seen := map[string]bool{}
	cursor := ""
	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, next, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if keep == nil {
				continue
			}
			if mapped, ok := keep(item); ok {
				result = append(result, mapped)
			}
		}
		next = strings.TrimSpace(next)
		// A server echoing an already visited cursor would loop forever.
		if next == "" || seen[next] {
			break
		}
		seen[next] = true
		cursor = next
	}
	return result, nil
}
