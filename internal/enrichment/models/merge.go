package models

import (
	"slices"
	"strings"
)

// group is a nested field group that can report whether it carries data.
type group[T any] interface {
	*T
	IsEmpty() bool
}

// mergeGroup allocates dst on first use and lets merge fill it from src.
// An empty src group never materializes an empty dst group.
func mergeGroup[T any, PT group[T]](dst *PT, src PT, merge func(dst, src PT)) {
	if src.IsEmpty() {
		return
	}
	if *dst == nil {
		*dst = PT(new(T))
	}
	merge(*dst, src)
}

func mergeLocation(dst, src *Location) {
	fillString(&dst.Raw, src.Raw)
	fillString(&dst.City, src.City)
	fillString(&dst.State, src.State)
	fillString(&dst.Country, src.Country)
}

func fillString(dst *string, src string) {
	if strings.TrimSpace(*dst) == "" && strings.TrimSpace(src) != "" {
		*dst = strings.TrimSpace(src)
	}
}

func fillInt(dst *int, src int) {
	if *dst == 0 && src != 0 {
		*dst = src
	}
}

func fillPtr[T any](dst **T, src *T) {
	if *dst == nil && src != nil {
		v := *src
		*dst = &v
	}
}

func fillSlice(dst *[]string, src []string) {
	if len(*dst) == 0 && len(src) > 0 {
		*dst = slices.Clone(src)
	}
}

func isBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
