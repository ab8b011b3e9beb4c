package helpers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errAssertion = errors.New("locator not visible")

func tracked(l *StatusLogger, n Named, body func() error) (err error) {
	defer l.Track(n, &err)
	return body()
}

func TestTrack(t *testing.T) {
	t.Run("success is logged as passed", func(t *testing.T) {
		// GIVEN
		var out bytes.Buffer
		l := &StatusLogger{Out: &out}

		// WHEN
		err := tracked(l, title("TC001"), func() error { return nil })

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, "TC001 ✅ Passed\n", out.String())
	})

	t.Run("error is logged as failed and returned unchanged", func(t *testing.T) {
		var out bytes.Buffer
		l := &StatusLogger{Out: &out}

		err := tracked(l, title("TC004"), func() error { return errAssertion })

		assert.Same(t, errAssertion, err)
		assert.Equal(t, "TC004 ❌ Failed\n", out.String())
	})

	t.Run("panic is logged as failed and keeps unwinding", func(t *testing.T) {
		var out bytes.Buffer
		l := &StatusLogger{Out: &out}

		assert.PanicsWithValue(t, "boom", func() {
			_ = tracked(l, title("TC009"), func() error { panic("boom") })
		})
		assert.Equal(t, "TC009 ❌ Failed\n", out.String())
	})

	t.Run("nil error pointer counts as passed", func(t *testing.T) {
		var out bytes.Buffer
		l := &StatusLogger{Out: &out}

		func() {
			defer l.Track(title("TC010"), nil)
		}()

		assert.Equal(t, "TC010 ✅ Passed\n", out.String())
	})
}
