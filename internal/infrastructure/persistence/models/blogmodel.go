package models

import (
	"time"

	"gorm.io/datatypes"
)

type BlogPostModel struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255;not null"`
	Slug        string `gorm:"uniqueIndex;size:120;not null"`
	Excerpt     string `gorm:"type:text"`
	Content     string `gorm:"type:text;not null"`
	ContentHTML string `gorm:"type:text"`
	Category    string `gorm:"size:64;index"`
	Tags        datatypes.JSONSlice[string]
	Author      string     `gorm:"size:120"`
	CoverImage  string     `gorm:"size:500"`
	Status      string     `gorm:"size:20;not null;index"`
	PublishedAt *time.Time `gorm:"index"`
	Views       int64      `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (BlogPostModel) TableName() string {
	return "blog_posts"
}
