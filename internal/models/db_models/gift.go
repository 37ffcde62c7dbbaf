package db_models

// Gift is a catalog item a member can purchase and later send to a match.
type Gift struct {
	BaseModel
	Name        string
	Description *string
	ImageURL    string
	AmountCents int64
	Currency    string `gorm:"size:3"`
	IsActive    bool   `gorm:"default:true"`
}
