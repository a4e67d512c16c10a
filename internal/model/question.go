package model

type Question struct {
	ID       uint     `gorm:"primarykey" json:"id"`
	TestID   uint     `json:"test_id" gorm:"not null;index"`
	Text     string   `json:"text" gorm:"type:text;not null"`
	Position int      `json:"position" gorm:"not null"` // 0-based submission order within the test
	Answers  []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE;"`
}
