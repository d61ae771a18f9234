package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PublicFeedKey      = "bookmarks:public"
	UserStatsKeyPrefix = "user:%d:stats"
	UserMarksKeyPrefix = "user:%d:bookmarks"
)

const (
	UserTTL  = 5 * time.Minute
	FeedTTL  = 2 * time.Minute
	StatsTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserStatsKey(userID uint) string {
	return fmt.Sprintf(UserStatsKeyPrefix, userID)
}

func UserBookmarksKey(userID uint) string {
	return fmt.Sprintf(UserMarksKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidatePublicFeed drops the anonymous public feed snapshot after any
// bookmark or favorite write.
func InvalidatePublicFeed(ctx context.Context) {
	Invalidate(ctx, PublicFeedKey)
}

// InvalidateUserContent drops a user's bookmark list and stats after a write.
func InvalidateUserContent(ctx context.Context, userID uint) {
	Invalidate(ctx, UserBookmarksKey(userID))
	Invalidate(ctx, UserStatsKey(userID))
}
