package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/engine"
)

type plainVerifier struct{}

func (plainVerifier) Verify(raw, hash string) bool { return "hash:"+raw == hash }

func member(name string) domain.User {
	return domain.User{Username: name, PasswordHash: "hash:" + name, Role: domain.RoleMember}
}

func TestCreateUser_SequentialIDs(t *testing.T) {
	var users []domain.User
	var prev int64
	for _, name := range []string{"ann", "bob", "cy", "dee"} {
		u, next, err := engine.CreateUser(member(name), users)
		require.NoError(t, err)
		assert.Greater(t, u.ID, prev)
		prev = u.ID
		users = next
	}
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, int64(4), users[3].ID)
}

func TestCreateUser_IDFollowsMaximum(t *testing.T) {
	users := []domain.User{{ID: 7, Username: "a", Role: domain.RoleMember}, {ID: 3, Username: "b", Role: domain.RoleMember}}

	u, _, err := engine.CreateUser(member("c"), users)

	require.NoError(t, err)
	assert.Equal(t, int64(8), u.ID)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	_, users, err := engine.CreateUser(member("alice"), nil)
	require.NoError(t, err)
	_, users, err = engine.CreateUser(member("bob"), users)
	require.NoError(t, err)

	_, after, err := engine.CreateUser(member("alice"), users)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Equal(t, users, after)

	// Comparison is case-sensitive.
	_, _, err = engine.CreateUser(member("Alice"), users)
	assert.NoError(t, err)
}

func TestCreateUser_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		user domain.User
	}{
		{"empty username", domain.User{Role: domain.RoleMember}},
		{"unknown role", domain.User{Username: "x", Role: "owner"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := engine.CreateUser(tc.user, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateUser_DoesNotMutateInput(t *testing.T) {
	users := make([]domain.User, 1, 4)
	users[0] = domain.User{ID: 1, Username: "a", Role: domain.RoleMember}

	_, next, err := engine.CreateUser(member("b"), users)

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Len(t, next, 2)
}

func TestAuthenticate(t *testing.T) {
	_, users, err := engine.CreateUser(member("alice"), nil)
	require.NoError(t, err)
	disabled := member("zed")
	disabled.Disabled = true
	_, users, err = engine.CreateUser(disabled, users)
	require.NoError(t, err)

	u, err := engine.Authenticate("alice", "alice", users, plainVerifier{})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = engine.Authenticate("alice", "wrong", users, plainVerifier{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = engine.Authenticate("nobody", "alice", users, plainVerifier{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = engine.Authenticate("zed", "zed", users, plainVerifier{})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestUpdateUser(t *testing.T) {
	_, users, _ := engine.CreateUser(member("alice"), nil)
	_, users, _ = engine.CreateUser(member("bob"), users)

	t.Run("keeps id and hash", func(t *testing.T) {
		u, next, err := engine.UpdateUser(2, domain.User{ID: 99, Username: "robert", Role: domain.RoleAdmin}, users)
		require.NoError(t, err)
		assert.Equal(t, int64(2), u.ID)
		assert.Equal(t, "hash:bob", u.PasswordHash)
		assert.Equal(t, u, next[1])
	})

	t.Run("not found", func(t *testing.T) {
		_, next, err := engine.UpdateUser(42, member("x"), users)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Equal(t, users, next)
	})

	t.Run("username taken by another user", func(t *testing.T) {
		_, _, err := engine.UpdateUser(2, member("alice"), users)
		assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})

	t.Run("same username is allowed", func(t *testing.T) {
		_, _, err := engine.UpdateUser(2, member("bob"), users)
		assert.NoError(t, err)
	})
}

func TestDeleteUser_CascadesOwnedRecords(t *testing.T) {
	_, users, _ := engine.CreateUser(member("alice"), nil)
	_, users, _ = engine.CreateUser(member("bob"), users)
	regs := []domain.Registration{{UserID: 1, ClassID: 1}, {UserID: 2, ClassID: 1}, {UserID: 1, ClassID: 2}}
	recs := []domain.Recommendation{{UserID: 1}, {UserID: 2}}

	nextUsers, nextRegs, nextRecs, err := engine.DeleteUser(1, users, regs, recs)

	require.NoError(t, err)
	assert.Len(t, nextUsers, 1)
	assert.Equal(t, []domain.Registration{{UserID: 2, ClassID: 1}}, nextRegs)
	assert.Equal(t, []domain.Recommendation{{UserID: 2}}, nextRecs)

	_, _, _, err = engine.DeleteUser(1, nextUsers, nextRegs, nextRecs)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
