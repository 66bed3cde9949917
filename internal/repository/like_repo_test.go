package repository

import (
	"testing"

	"revu/internal/domain"
	"revu/internal/models"
	"revu/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func likeCount(t *testing.T, db *gorm.DB, campaignID uint) int {
	t.Helper()
	var c models.Campaign
	require.NoError(t, db.First(&c, campaignID).Error)
	return c.LikeCount
}

func TestToggle_Involution(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)
	advertiser := testutil.CreateUser(t, db, "adv", domain.RoleAdvertiser)
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)
	campaign := testutil.CreateCampaign(t, db, advertiser.ID, 5)

	liked, err := repo.Toggle(alice.ID, campaign.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likeCount(t, db, campaign.ID))

	exists, err := repo.Exists(alice.ID, campaign.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	liked, err = repo.Toggle(alice.ID, campaign.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, likeCount(t, db, campaign.ID))

	exists, err = repo.Exists(alice.ID, campaign.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestToggle_CountTracksRowsAcrossUsers(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)
	advertiser := testutil.CreateUser(t, db, "adv", domain.RoleAdvertiser)
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)
	bob := testutil.CreateUser(t, db, "bob", domain.RoleInfluencer)
	campaign := testutil.CreateCampaign(t, db, advertiser.ID, 5)

	_, err := repo.Toggle(alice.ID, campaign.ID)
	require.NoError(t, err)
	_, err = repo.Toggle(bob.ID, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likeCount(t, db, campaign.ID))

	_, err = repo.Toggle(alice.ID, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likeCount(t, db, campaign.ID))

	var rows int64
	require.NoError(t, db.Model(&models.Like{}).Where("campaign_id = ?", campaign.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestToggle_DecrementFlooredAtZero(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)
	advertiser := testutil.CreateUser(t, db, "adv", domain.RoleAdvertiser)
	alice := testutil.CreateUser(t, db, "alice", domain.RoleInfluencer)
	campaign := testutil.CreateCampaign(t, db, advertiser.ID, 5)

	// like row exists but the counter was never bumped (drifted state)
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, CampaignID: campaign.ID}).Error)

	liked, err := repo.Toggle(alice.ID, campaign.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, likeCount(t, db, campaign.ID))
}
