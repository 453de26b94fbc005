package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		op       Operation
		ownerId  string
		callerId string
		want     Decision
	}{
		{"create allowed for any authenticated caller", OpCreate, "", "user-a", Allow},
		{"create denied without identity", OpCreate, "", "", Deny},
		{"read own note", OpRead, "user-a", "user-a", Allow},
		{"read foreign note", OpRead, "user-a", "user-b", Deny},
		{"list own record", OpList, "user-a", "user-a", Allow},
		{"list foreign record", OpList, "user-a", "user-b", Deny},
		{"update own note", OpUpdate, "user-a", "user-a", Allow},
		{"update foreign note", OpUpdate, "user-a", "user-b", Deny},
		{"delete own note", OpDelete, "user-a", "user-a", Allow},
		{"delete foreign note", OpDelete, "user-a", "user-b", Deny},
		{"read without identity", OpRead, "user-a", "", Deny},
		{"unknown operation", Operation("transfer"), "user-a", "user-a", Deny},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.op, tc.ownerId, tc.callerId))
		})
	}
}
