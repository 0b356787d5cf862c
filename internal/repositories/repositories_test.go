package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/okzdev/microblog/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Tweet{}, &models.Media{}, &models.Like{}, &models.Follow{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{APIKey: "key-" + name, Name: name}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

func TestCreateLike_DuplicateLeavesOneRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	user := createUser(t, db, "alice")
	author := createUser(t, db, "bob")
	tweet := &models.Tweet{Content: "hello", AuthorID: author.ID}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("failed to create tweet: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.CreateLike(&models.Like{UserID: user.ID, TweetID: tweet.ID}); err != nil {
			t.Fatalf("CreateLike call %d: %v", i+1, err)
		}
	}

	var count int64
	db.Model(&models.Like{}).Where("user_id = ? AND tweet_id = ?", user.ID, tweet.ID).Count(&count)
	if count != 1 {
		t.Errorf("like rows = %d, want 1", count)
	}
}

func TestDeleteLike_NeverLikedIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	user := createUser(t, db, "alice")

	if err := repo.DeleteLike(user.ID, 12345); err != nil {
		t.Errorf("DeleteLike on absent like: %v, want nil", err)
	}
}

func TestCreateFollow_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	follower := createUser(t, db, "alice")
	followed := createUser(t, db, "bob")

	for i := 0; i < 2; i++ {
		err := repo.CreateFollow(&models.Follow{FollowerID: follower.ID, FollowedID: followed.ID})
		if err != nil {
			t.Fatalf("CreateFollow call %d: %v", i+1, err)
		}
	}

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	if count != 1 {
		t.Errorf("follow rows = %d, want 1", count)
	}

	ids, err := repo.GetFollowingIDs(follower.ID)
	if err != nil {
		t.Fatalf("GetFollowingIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != followed.ID {
		t.Errorf("GetFollowingIDs = %v, want [%d]", ids, followed.ID)
	}
}

func TestDeleteFollow_AbsentIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	follower := createUser(t, db, "alice")

	if err := repo.DeleteFollow(follower.ID, 999); err != nil {
		t.Errorf("DeleteFollow on absent edge: %v, want nil", err)
	}
}

func TestGetFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	// bob and carol follow alice; alice follows bob.
	for _, f := range []*models.Follow{
		{FollowerID: bob.ID, FollowedID: alice.ID},
		{FollowerID: carol.ID, FollowedID: alice.ID},
		{FollowerID: alice.ID, FollowedID: bob.ID},
	} {
		if err := repo.CreateFollow(f); err != nil {
			t.Fatalf("CreateFollow: %v", err)
		}
	}

	followers, err := repo.GetFollowers(alice.ID)
	if err != nil {
		t.Fatalf("GetFollowers: %v", err)
	}
	if len(followers) != 2 {
		t.Errorf("followers of alice = %d, want 2", len(followers))
	}

	following, err := repo.GetFollowing(alice.ID)
	if err != nil {
		t.Fatalf("GetFollowing: %v", err)
	}
	if len(following) != 1 || following[0].ID != bob.ID {
		t.Errorf("following of alice = %v, want [bob]", following)
	}
}

func TestCreateTweetWithMedia_ClaimsOnlyUnattached(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTweetRepository(db)
	author := createUser(t, db, "alice")

	free := &models.Media{Filename: "free.png"}
	if err := db.Create(free).Error; err != nil {
		t.Fatalf("create media: %v", err)
	}
	otherTweet := &models.Tweet{Content: "earlier", AuthorID: author.ID}
	if err := db.Create(otherTweet).Error; err != nil {
		t.Fatalf("create tweet: %v", err)
	}
	claimed := &models.Media{Filename: "claimed.png", TweetID: &otherTweet.ID}
	if err := db.Create(claimed).Error; err != nil {
		t.Fatalf("create media: %v", err)
	}

	tweet := &models.Tweet{Content: "with media", AuthorID: author.ID}
	// One free, one already attached, one nonexistent: only the free one is claimed.
	err := repo.CreateTweetWithMedia(tweet, []uint{free.ID, claimed.ID, 9999})
	if err != nil {
		t.Fatalf("CreateTweetWithMedia: %v", err)
	}
	if tweet.ID == 0 {
		t.Fatal("tweet was not assigned an id")
	}

	var gotFree, gotClaimed models.Media
	db.First(&gotFree, free.ID)
	db.First(&gotClaimed, claimed.ID)
	if gotFree.TweetID == nil || *gotFree.TweetID != tweet.ID {
		t.Errorf("free media tweet_id = %v, want %d", gotFree.TweetID, tweet.ID)
	}
	if gotClaimed.TweetID == nil || *gotClaimed.TweetID != otherTweet.ID {
		t.Errorf("already-claimed media was reassigned: tweet_id = %v", gotClaimed.TweetID)
	}
}

func TestCreateTweetWithMedia_NoMediaIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTweetRepository(db)
	author := createUser(t, db, "alice")

	tweet := &models.Tweet{Content: "plain", AuthorID: author.ID}
	if err := repo.CreateTweetWithMedia(tweet, nil); err != nil {
		t.Fatalf("CreateTweetWithMedia: %v", err)
	}
	if tweet.ID == 0 {
		t.Error("tweet was not assigned an id")
	}
}

func TestDeleteTweetCascade(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTweetRepository(db)
	author := createUser(t, db, "alice")
	liker := createUser(t, db, "bob")

	tweet := &models.Tweet{Content: "doomed", AuthorID: author.ID}
	if err := repo.CreateTweetWithMedia(tweet, nil); err != nil {
		t.Fatalf("create tweet: %v", err)
	}
	media := &models.Media{Filename: "pic.png", TweetID: &tweet.ID}
	if err := db.Create(media).Error; err != nil {
		t.Fatalf("create media: %v", err)
	}
	if err := db.Create(&models.Like{UserID: liker.ID, TweetID: tweet.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}

	filenames, err := repo.DeleteTweetCascade(tweet.ID)
	if err != nil {
		t.Fatalf("DeleteTweetCascade: %v", err)
	}
	if len(filenames) != 1 || filenames[0] != "pic.png" {
		t.Errorf("filenames = %v, want [pic.png]", filenames)
	}

	var tweets, likes, medias int64
	db.Model(&models.Tweet{}).Where("id = ?", tweet.ID).Count(&tweets)
	db.Model(&models.Like{}).Where("tweet_id = ?", tweet.ID).Count(&likes)
	db.Model(&models.Media{}).Where("tweet_id = ?", tweet.ID).Count(&medias)
	if tweets != 0 || likes != 0 || medias != 0 {
		t.Errorf("after cascade: tweets=%d likes=%d medias=%d, want all 0", tweets, likes, medias)
	}
}

func TestGetFeedForAuthors_OrderByLikesThenRecency(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTweetRepository(db)
	author := createUser(t, db, "author")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	t1 := &models.Tweet{Content: "five likes, older", AuthorID: author.ID, CreatedAt: base}
	t2 := &models.Tweet{Content: "five likes, newer", AuthorID: author.ID, CreatedAt: base.Add(time.Hour)}
	t3 := &models.Tweet{Content: "two likes", AuthorID: author.ID, CreatedAt: base.Add(2 * time.Hour)}
	for _, tw := range []*models.Tweet{t1, t2, t3} {
		if err := db.Create(tw).Error; err != nil {
			t.Fatalf("create tweet: %v", err)
		}
	}

	likers := make([]*models.User, 5)
	for i := range likers {
		likers[i] = createUser(t, db, fmt.Sprintf("liker%d", i))
	}
	for _, u := range likers {
		for _, tw := range []*models.Tweet{t1, t2} {
			if err := db.Create(&models.Like{UserID: u.ID, TweetID: tw.ID}).Error; err != nil {
				t.Fatalf("create like: %v", err)
			}
		}
	}
	for _, u := range likers[:2] {
		if err := db.Create(&models.Like{UserID: u.ID, TweetID: t3.ID}).Error; err != nil {
			t.Fatalf("create like: %v", err)
		}
	}

	feed, err := repo.GetFeedForAuthors([]uint{author.ID})
	if err != nil {
		t.Fatalf("GetFeedForAuthors: %v", err)
	}
	if len(feed) != 3 {
		t.Fatalf("feed length = %d, want 3", len(feed))
	}
	want := []uint{t2.ID, t1.ID, t3.ID}
	for i, tw := range feed {
		if tw.ID != want[i] {
			t.Fatalf("feed order = [%d %d %d], want %v", feed[0].ID, feed[1].ID, feed[2].ID, want)
		}
	}

	// Associations are loaded for serialization.
	if feed[0].Author.Name != "author" {
		t.Errorf("feed author = %q, want %q", feed[0].Author.Name, "author")
	}
	if len(feed[0].Likes) != 5 {
		t.Errorf("feed likes = %d, want 5", len(feed[0].Likes))
	}
	if feed[0].Likes[0].User.Name == "" {
		t.Error("liking user was not preloaded")
	}
}

func TestGetFeedForAuthors_ExcludesOtherAuthors(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresTweetRepository(db)
	followed := createUser(t, db, "followed")
	stranger := createUser(t, db, "stranger")

	for _, tw := range []*models.Tweet{
		{Content: "in feed", AuthorID: followed.ID},
		{Content: "not in feed", AuthorID: stranger.ID},
	} {
		if err := db.Create(tw).Error; err != nil {
			t.Fatalf("create tweet: %v", err)
		}
	}

	feed, err := repo.GetFeedForAuthors([]uint{followed.ID})
	if err != nil {
		t.Fatalf("GetFeedForAuthors: %v", err)
	}
	if len(feed) != 1 || feed[0].Content != "in feed" {
		t.Errorf("feed = %v, want only the followed author's tweet", feed)
	}
}

func TestUserRepository_GetUserByAPIKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	user := createUser(t, db, "alice")

	got, err := repo.GetUserByAPIKey(user.APIKey)
	if err != nil {
		t.Fatalf("GetUserByAPIKey: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user id = %d, want %d", got.ID, user.ID)
	}

	if _, err := repo.GetUserByAPIKey("nope"); err == nil {
		t.Error("expected error for unknown api key")
	}
}

func TestMediaRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMediaRepository(db)

	media := &models.Media{Filename: "cat.png"}
	if err := repo.CreateMedia(media); err != nil {
		t.Fatalf("CreateMedia: %v", err)
	}
	if media.ID == 0 {
		t.Fatal("media was not assigned an id")
	}

	got, err := repo.GetMediaByID(media.ID)
	if err != nil {
		t.Fatalf("GetMediaByID: %v", err)
	}
	if got.TweetID != nil {
		t.Errorf("new media tweet_id = %v, want nil", got.TweetID)
	}
}
