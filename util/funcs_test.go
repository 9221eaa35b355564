package util

import (
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapIter(t *testing.T) {
	strs := slices.Collect(MapIter(slices.Values([]int{1, 2, 3}), strconv.Itoa))

	assert.Equal(t, []string{"1", "2", "3"}, strs)
}

func TestMapIterStopsEarly(t *testing.T) {
	var seen []string
	for v := range MapIter(slices.Values([]int{1, 2, 3, 4}), strconv.Itoa) {
		seen = append(seen, v)
		if v == "3" {
			break
		}
	}
	assert.Equal(t, []string{"1", "2", "3"}, seen)
}

func TestFilterMapIter(t *testing.T) {
	evens := FilterMapIter(slices.Values([]int{1, 2, 3, 4}), func(i int) (string, bool) {
		return strconv.Itoa(i), i%2 == 0
	})

	assert.Equal(t, []string{"2", "4"}, slices.Collect(evens))
	assert.Equal(t, 2, CountIter(evens))
}

func TestSetFromSeq(t *testing.T) {
	s := SetFromSeq(slices.Values([]string{"NAME", "ID", "NAME"}), 0)

	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Contains("NAME"))
	assert.True(t, s.Contains("ID"))
}
