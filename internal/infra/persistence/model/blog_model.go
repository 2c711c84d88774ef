package model

import (
	"time"

	"github.com/google/uuid"

	"inkwell/internal/domain/entity"
)

// PostModel mirrors the 'posts' table.
type PostModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Slug      string    `gorm:"type:varchar(255);unique;not null"`
	Summary   string    `gorm:"type:text"`
	Content   string    `gorm:"type:text;not null"`
	Published bool      `gorm:"not null;default:false;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tags []TagModel `gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// ToEntity converts the model and its loaded tags to a domain Post.
func (m *PostModel) ToEntity() *entity.Post {
	return &entity.Post{
		ID:        m.ID,
		Title:     m.Title,
		Slug:      m.Slug,
		Summary:   m.Summary,
		Content:   m.Content,
		Published: m.Published,
		AuthorID:  m.AuthorID,
		Tags:      tagsToEntities(m.Tags),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PostModelFromEntity converts a domain Post to its table mapping. Tag
// associations are written separately.
func PostModelFromEntity(e *entity.Post) *PostModel {
	return &PostModel{
		ID:        e.ID,
		Title:     e.Title,
		Slug:      e.Slug,
		Summary:   e.Summary,
		Content:   e.Content,
		Published: e.Published,
		AuthorID:  e.AuthorID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	AuthorName string    `gorm:"type:varchar(100);not null"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// ToEntity converts the model to a domain Comment.
func (m *CommentModel) ToEntity() *entity.Comment {
	return &entity.Comment{
		ID:         m.ID,
		PostID:     m.PostID,
		AuthorID:   m.AuthorID,
		AuthorName: m.AuthorName,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

// TagModel mirrors the 'tags' table. Tags are shared between posts and products.
type TagModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(64);unique;not null"`
	Slug string    `gorm:"type:varchar(64);unique;not null"`
}

// TableName explicitly sets the table name for GORM.
func (TagModel) TableName() string {
	return "tags"
}

// ToEntity converts the model to a domain Tag.
func (m *TagModel) ToEntity() *entity.Tag {
	return &entity.Tag{ID: m.ID, Name: m.Name, Slug: m.Slug}
}

func tagsToEntities(models []TagModel) []*entity.Tag {
	tags := make([]*entity.Tag, 0, len(models))
	for i := range models {
		tags = append(tags, models[i].ToEntity())
	}

	return tags
}

// AboutPageModel mirrors the single-row 'about_page' table.
type AboutPageModel struct {
	ID        int    `gorm:"primaryKey"`
	Title     string `gorm:"type:varchar(255);not null"`
	Content   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AboutPageModel) TableName() string {
	return "about_page"
}

// ToEntity converts the model to a domain AboutPage.
func (m *AboutPageModel) ToEntity() *entity.AboutPage {
	return &entity.AboutPage{
		Title:     m.Title,
		Content:   m.Content,
		UpdatedAt: m.UpdatedAt,
	}
}
