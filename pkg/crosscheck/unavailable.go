//go:build !(treesitter && cgo)

package crosscheck

import "context"

// Available reports whether Oracle is backed by tree-sitter.
const Available = false

// Oracle always fails in builds without tree-sitter.
func Oracle(ctx context.Context, content []byte, cplusplus bool) ([]Symbol, error) {
	return nil, ErrUnavailable
}
