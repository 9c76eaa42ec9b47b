package cli

import (
	"errors"
	"strconv"
	"testing"

	"go.viam.com/test"
)

func TestMapOver(t *testing.T) {
	mapped, _ := mapOver([]int{1, 2}, func(x int) (int, error) { return x + 1, nil })
	test.That(t, mapped, test.ShouldResemble, []int{2, 3})

	_, err := mapOver([]string{"1", "x"}, strconv.Atoi)
	test.That(t, err, test.ShouldNotBeNil)

	mapped, err = mapOver(nil, func(x int) (int, error) { return 0, errors.New("never called") })
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mapped, test.ShouldBeEmpty)
}

func TestSamePath(t *testing.T) {
	equal, _ := samePath("/x", "/x")
	test.That(t, equal, test.ShouldBeTrue)
	equal, _ = samePath("/x", "x")
	test.That(t, equal, test.ShouldBeFalse)
	equal, _ = samePath("/x/../y", "/y")
	test.That(t, equal, test.ShouldBeTrue)
}
