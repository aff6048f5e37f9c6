package models

import "time"

// Post is a content unit owned by a single user. Likes and Unlikes are two
// independent relation tables; a user must never sit in both for the same
// post, which the handlers enforce with a remove-then-add pair.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Caption   string    `gorm:"type:text" json:"caption"`
	Image     string    `gorm:"size:512" json:"image"`
	VideoURL  string    `gorm:"size:512" json:"video_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Likes     []User    `gorm:"many2many:post_likes;constraint:OnDelete:CASCADE;" json:"-"`
	Unlikes   []User    `gorm:"many2many:post_unlikes;constraint:OnDelete:CASCADE;" json:"-"`
}

// HasContent reports whether at least one of the post's payload fields is set.
func (p *Post) HasContent() bool {
	return p.Caption != "" || p.Image != "" || p.VideoURL != ""
}
