package follows

import (
	"github.com/sahyogi/sahyogi-backend/internal/features/accounts"
)

// FollowActionResponse after follow/unfollow
type FollowActionResponse struct {
	IsFollowing   bool `json:"isFollowing"`
	FollowerCount int  `json:"followerCount"`
}

// FollowersResponse for GET /{kind}/followers/:id
type FollowersResponse struct {
	Followers     []accounts.Follower `bson:"followers" json:"followers"`
	FollowerCount int                 `bson:"followerCount" json:"followerCount"`
}

// FollowStatusResponse for GET /{kind}/isfollowing/:id
type FollowStatusResponse struct {
	IsFollowing bool `json:"isFollowing"`
}
