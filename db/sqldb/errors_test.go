package sqldb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	cause := errors.New("connection refused")

	assert.Nil(t, Translate("exec", "SELECT 1", nil))

	err := Translate("exec", "UPDATE t SET x = 1", cause)
	var dae *DataAccessError
	assert.ErrorAs(t, err, &dae)
	assert.Equal(t, "exec", dae.Op)
	assert.Equal(t, "UPDATE t SET x = 1", dae.Query)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `data access [exec] "UPDATE t SET x = 1": connection refused`, err.Error())

	// already translated errors keep their op
	wrapped := fmt.Errorf("outer: %w", err)
	assert.Same(t, wrapped, Translate("release", "", wrapped))
}

func TestDataAccessErrorMessage(t *testing.T) {
	type testCase struct {
		description string
		err         *DataAccessError
		expected    string
	}

	tests := []testCase{
		{
			description: "query is omitted when empty",
			err:         &DataAccessError{Op: "acquire", Err: errors.New("pool closed")},
			expected:    "data access [acquire]: pool closed",
		},
		{
			description: "message wins over the cause text",
			err:         &DataAccessError{Op: "result", Query: "SELECT 1", Msg: "at most one result expected, got 2", Err: ErrIncorrectResultSize},
			expected:    `data access [result] "SELECT 1": at most one result expected, got 2`,
		},
	}
	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			assert.Equal(t, test.expected, test.err.Error())
		})
	}
}
