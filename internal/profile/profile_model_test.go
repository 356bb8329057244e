package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleFacilityOwner.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("SUPERUSER").Valid())
	assert.False(t, Role("").Valid())
}

func TestProfileBanned(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)

	open := &PlayerProfile{IsBanned: true}
	assert.True(t, open.Banned(now), "ban without an until date is indefinite")

	until := now.Add(24 * time.Hour)
	temp := &PlayerProfile{IsBanned: true, BannedUntil: &until}
	assert.True(t, temp.Banned(now))

	expired := now.Add(-time.Hour)
	lapsed := &PlayerProfile{IsBanned: true, BannedUntil: &expired}
	assert.False(t, lapsed.Banned(now), "a lapsed ban no longer blocks the account")

	clean := &PlayerProfile{}
	assert.False(t, clean.Banned(now))
}
