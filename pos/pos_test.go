package pos

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestIntervalWidth(t *testing.T) {
	expect.EQ(t, Interval{10, 10}.Width(), 1)
	expect.EQ(t, Interval{10, 14}.Width(), 5)
}

func TestIntervalShift(t *testing.T) {
	expect.EQ(t, Interval{10, 14}.Shift(3), Interval{13, 17})
	expect.EQ(t, Interval{10, 14}.Shift(-3), Interval{7, 11})
}

func TestIntervalIntersect(t *testing.T) {
	iv, ok := Interval{1, 10}.Intersect(Interval{5, 20})
	expect.True(t, ok)
	expect.EQ(t, iv, Interval{5, 10})

	_, ok = Interval{1, 4}.Intersect(Interval{5, 20})
	expect.False(t, ok)
}

func TestIntervalOverlaps(t *testing.T) {
	expect.True(t, Interval{1, 10}.Overlaps(Interval{10, 20}))
	expect.False(t, Interval{1, 9}.Overlaps(Interval{10, 20}))
}
