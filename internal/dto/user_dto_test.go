package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Profile updates bind leniently: keys outside the allow-list (credentials,
// staff flag, affiliate) have no target field and are dropped without error.
func TestUpdateUserRequestDropsUnlistedFields(t *testing.T) {
	body := []byte(`{
		"firstName": "Ana",
		"isStaff": true,
		"email": "evil@example.com",
		"affiliate": "HACK0UA",
		"password": "oops"
	}`)

	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal(body, &req))

	require.NotNil(t, req.FirstName)
	assert.Equal(t, "Ana", *req.FirstName)
	// the struct simply has nowhere to put the rest
	assert.Nil(t, req.Document)
	assert.Nil(t, req.Roles)
}
