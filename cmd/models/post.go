package models

// Post rows are soft-deleted: IsDeleted is flipped instead of removing the
// row, and every read path filters on it.
type Post struct {
    PostID    uint    `gorm:"column:post_id;primaryKey" json:"post_id"`
    Title     string  `gorm:"column:title;size:255;not null" json:"title"`
    PostBody  string  `gorm:"column:postbody;type:text;not null" json:"postbody"`
    Media     *string `gorm:"column:media;size:500" json:"media,omitempty"`
    UserID    uint    `gorm:"column:user_id;not null" json:"user_id"`
    IsDeleted bool    `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
}

func (Post) TableName() string {
    return "post"
}

// Like has no primary key and no uniqueness constraint: a user liking the
// same post twice inserts two distinct rows.
type Like struct {
    PostID uint `gorm:"column:post_id;not null" json:"post_id"`
    UserID uint `gorm:"column:user_id;not null" json:"user_id"`
}

func (Like) TableName() string {
    return "likes"
}

type Comment struct {
    CommentID uint   `gorm:"column:comment_id;primaryKey" json:"comment_id"`
    UserID    uint   `gorm:"column:user_id;not null" json:"user_id"`
    PostID    uint   `gorm:"column:post_id;not null" json:"post_id"`
    Body      string `gorm:"column:body;type:text;not null" json:"body"`
}

func (Comment) TableName() string {
    return "comments"
}
