package model

type Section struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	LessonID uint    `json:"lesson_id" gorm:"not null;index"`
	Title    string  `json:"title" gorm:"not null"`
	Content  string  `json:"content" gorm:"type:text"`
	VideoRef *string `json:"video_ref,omitempty"`
	Order    int     `json:"order" gorm:"column:sort_order;not null;default:0"`
}
