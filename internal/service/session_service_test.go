package service

import (
	"testing"
	"time"

	"revu/internal/domain"
	"revu/internal/models"
	"revu/internal/repository"
	"revu/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSessionEnv(t *testing.T, ttl time.Duration) (*SessionService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewSessionService(repository.NewSessionRepository(db), repository.NewUserRepository(db), ttl)
	return svc, db
}

func TestSession_IssueAndResolve(t *testing.T) {
	svc, db := newSessionEnv(t, time.Hour)
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)

	sess, err := svc.Issue(alice.ID)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64) // 32 random bytes, hex encoded

	u, err := svc.Resolve(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)
	assert.Equal(t, alice.Username, u.Username)
}

func TestSession_TokensAreUnique(t *testing.T) {
	svc, db := newSessionEnv(t, time.Hour)
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)

	s1, err := svc.Issue(alice.ID)
	require.NoError(t, err)
	s2, err := svc.Issue(alice.ID)
	require.NoError(t, err)
	assert.NotEqual(t, s1.Token, s2.Token)
}

func TestSession_UnknownTokenRejected(t *testing.T) {
	svc, _ := newSessionEnv(t, time.Hour)
	_, err := svc.Resolve("no-such-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
	_, err = svc.Resolve("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSession_ExpiryIsFixedFromIssuance(t *testing.T) {
	svc, db := newSessionEnv(t, -time.Second) // already expired at issuance
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)

	sess, err := svc.Issue(alice.ID)
	require.NoError(t, err)
	_, err = svc.Resolve(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	// the stale record was removed on resolve
	var count int64
	require.NoError(t, db.Model(&models.Session{}).Where("token = ?", sess.Token).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSession_InvalidateKillsTokenImmediately(t *testing.T) {
	svc, db := newSessionEnv(t, time.Hour)
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)

	sess, err := svc.Issue(alice.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(sess.Token))
	_, err = svc.Resolve(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSession_PruneRemovesOnlyExpired(t *testing.T) {
	svc, db := newSessionEnv(t, time.Hour)
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)

	live, err := svc.Issue(alice.ID)
	require.NoError(t, err)
	stale := &models.Session{Token: "stale-token", UserID: alice.ID, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, db.Create(stale).Error)

	n, err := svc.PruneExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = svc.Resolve(live.Token)
	assert.NoError(t, err)
}
