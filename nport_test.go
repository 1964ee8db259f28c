package nport_test

import (
	"fmt"
	"testing"

	nport "github.com/ChipDale729/nport-viewer"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := nport.Errorf(nport.ENOTFOUND, "filing %q not found", "test")

	assert.Equal(t, nport.ENOTFOUND, nport.ErrorCode(err))
	assert.Equal(t, "filing \"test\" not found", nport.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nport.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, nport.EINTERNAL, nport.ErrorCode(fmt.Errorf("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nport.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", nport.ErrorMessage(fmt.Errorf("boom")))
}
