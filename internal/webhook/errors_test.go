package webhook

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DarshanCode2005/gitmesh/internal/model"
)

func TestHandlerError(t *testing.T) {
	cause := errors.New("boom")
	err := NewHandlerError(model.EventIssues, ActionOpened, cause)

	assert.Equal(t, "issues.opened handler: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsHandlerError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsHandlerError(cause))

	noAction := NewHandlerError(model.EventPush, "", cause)
	assert.Equal(t, "push handler: boom", noAction.Error())
}
