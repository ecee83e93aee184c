package validation

import (
	"cmp"
	"errors"
	"slices"
	"strconv"
	"strings"
)

// SortMalformedErrors orders errors by source (file, then line), fragment, field and message so reports are stable.
// Errors that are not MalformedFragmentErrors keep their relative order after the sorted ones.
func SortMalformedErrors(allErrors []error) {
	if len(allErrors) == 0 {
		return
	}

	var malformed []*MalformedFragmentError
	var others []error
	for _, err := range allErrors {
		var mErr *MalformedFragmentError
		if errors.As(err, &mErr) {
			malformed = append(malformed, mErr)
		} else {
			others = append(others, err)
		}
	}

	slices.SortStableFunc(malformed, compareMalformedErrors)

	idx := 0
	for _, mErr := range malformed {
		allErrors[idx] = mErr
		idx++
	}
	for _, err := range others {
		allErrors[idx] = err
		idx++
	}
}

func compareMalformedErrors(a, b *MalformedFragmentError) int {
	aFile, aLine := splitSource(a.Source)
	bFile, bLine := splitSource(b.Source)
	return cmp.Or(
		cmp.Compare(aFile, bFile),
		cmp.Compare(aLine, bLine),
		cmp.Compare(a.Fragment, b.Fragment),
		cmp.Compare(a.Field, b.Field),
		cmp.Compare(a.Message, b.Message),
	)
}

// splitSource splits "file:line" so line 9 sorts before line 10.
func splitSource(source string) (string, int) {
	idx := strings.LastIndexByte(source, ':')
	if idx < 0 {
		return source, 0
	}
	line, err := strconv.Atoi(source[idx+1:])
	if err != nil {
		return source, 0
	}
	return source[:idx], line
}
