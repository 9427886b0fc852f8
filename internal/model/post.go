package model

import "time"

// Post is a published text entry. PubDate is stamped once on insert and never
// touched again, edits included. Deleting the author removes the author's
// posts; deleting the group only clears the reference.
type Post struct {
	ID       uint64    `gorm:"primaryKey;index:idx_pub_date_id,priority:2,sort:desc" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index:idx_pub_date_id,priority:1,sort:desc" json:"pub_date"`
	AuthorID uint64    `gorm:"not null;index" json:"author_id"`
	Author   *User     `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty"`
	GroupID  *uint64   `gorm:"index" json:"group_id"`
	Group    *Group    `gorm:"constraint:OnDelete:SET NULL" json:"group,omitempty"`
}
