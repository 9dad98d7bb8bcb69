// Package store persists small JSON values by key.
package store

import (
	"errors"
	"strings"
)

// Store is a key/value persistence layer. Get reports false when the key is absent.
type Store interface {
	Get(key string, v any) (bool, error)
	Put(key string, v any) error
	Delete(key string) error
}

var ErrInvalidKey = errors.New("invalid store key")

// 键由 "/" 分隔的若干段组成，不允许空段和 "." ".."
func checkKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsAny(seg, `\:`) {
			return ErrInvalidKey
		}
	}
	return nil
}
