package models

import (
	"time"

	"github.com/google/uuid"
)

// Friendship is one direction of a mutual friend relation. The friends
// service writes both directions; the challenge core only reads.
type Friendship struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_friendships_user_friend"`
	FriendID  uuid.UUID `gorm:"column:friend_id;type:uuid;not null;uniqueIndex:ux_friendships_user_friend"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
