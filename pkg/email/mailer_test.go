package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/queuekit/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Welcome!",
		BodyHTML: "<h1>Hello</h1>",
	}

	t.Run("valid params", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("missing recipient", func(t *testing.T) {
		t.Parallel()
		params := valid
		params.SendTo = ""
		assert.ErrorIs(t, params.Validate(), email.ErrInvalidParams)
	})

	t.Run("malformed recipient", func(t *testing.T) {
		t.Parallel()
		params := valid
		params.SendTo = "not-an-address"
		assert.ErrorIs(t, params.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()
		params := valid
		params.Subject = ""
		assert.ErrorIs(t, params.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing body", func(t *testing.T) {
		t.Parallel()
		params := valid
		params.BodyHTML = ""
		assert.ErrorIs(t, params.Validate(), email.ErrInvalidParams)
	})
}
