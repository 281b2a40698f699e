package friendship

import "time"

// Friendship is an undirected link between two users. The pair is stored
// with FriendA < FriendB so each pair has exactly one row.
type Friendship struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FriendA   int64     `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"friend_a"`
	FriendB   int64     `gorm:"not null;uniqueIndex:idx_friendship_pair;index" json:"friend_b"`
	CreatedAt time.Time `json:"created_at"`
}

func (Friendship) TableName() string { return "friendships" }

// Friend is one entry of a user's friend list.
type Friend struct {
	UserName     string `json:"user_name"`
	ProfileImage string `json:"profile_image"`
	Description  string `json:"description"`
	IsBot        bool   `json:"is_bot"`
	AmountPosts  int    `json:"amount_posts"`
}

func orderedPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
