package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todoclient/internal/remote"
)

func TestFromError(t *testing.T) {
	wrap := func(k remote.Kind) error {
		return fmt.Errorf("cmd: %w", &remote.Error{Op: "op", Kind: k})
	}

	assert.Equal(t, Success, FromError(nil))
	assert.Equal(t, UserError, FromError(wrap(remote.NotFound)))
	assert.Equal(t, UserError, FromError(wrap(remote.Validation)))
	assert.Equal(t, BackendError, FromError(wrap(remote.Transport)))
	assert.Equal(t, BackendError, FromError(wrap(remote.Timeout)))
	assert.Equal(t, BackendError, FromError(wrap(remote.Unknown)))
	assert.Equal(t, BackendError, FromError(errors.New("plain")))
}
