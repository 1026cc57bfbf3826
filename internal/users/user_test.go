package users

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchTextJoinsSearchableFields(t *testing.T) {
	u := User{UserID: 42, Username: "alice", Email: "a@x.io", FullName: "Alice Liddell", Phone: "555", Address: "ignored"}
	require.Equal(t, "42 alice a@x.io Alice Liddell 555", u.SearchText())
}

func TestSearchTextWithoutIDLeavesLeadingSpace(t *testing.T) {
	u := User{Username: "bob"}
	require.Equal(t, " bob   ", u.SearchText())
	require.False(t, u.HasID())
	require.Empty(t, u.IDString())
}

func TestPayloadOmitsOnlyMissingID(t *testing.T) {
	data, err := json.Marshal(Payload{Username: "bob", Email: "b@x.io", Password: "secret1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"username":"bob","email":"b@x.io","password":"secret1","fullName":"","dob":"","phone":"","address":""}`, string(data))

	data, err = json.Marshal(Payload{UserID: 7, Username: "bob"})
	require.NoError(t, err)
	require.Contains(t, string(data), `"userId":7`)
}
