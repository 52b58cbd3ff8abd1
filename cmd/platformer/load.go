package main

import (
	"github.com/milk9111/platformer/levels"
)

// nextLevel returns the embedded level after name, or "" after the last.
func nextLevel(name string) string {
	names := levels.Names()
	for i, n := range names {
		if n == name && i+1 < len(names) {
			return names[i+1]
		}
	}
	return ""
}

func firstLevel() string {
	names := levels.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
