package redis

import "strings"

const (
	// DefaultKeyPrefix namespaces every key written by appdeck
	DefaultKeyPrefix = "appdeck:apps"
	// documentSuffix is appended to the prefix for the document key
	documentSuffix = ":document"
)

// DocumentKey returns the Redis key holding the whole app document
func DocumentKey(prefix string) string {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return prefix + documentSuffix
}
