package domain

type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:150;uniqueIndex;uniqueIndex:idx_tag_name_slug;not null"`
	Color string `json:"color" gorm:"size:50"`
	Slug  string `json:"slug" gorm:"size:50;uniqueIndex;uniqueIndex:idx_tag_name_slug;not null"`
}

func (Tag) TableName() string { return "tags" }
