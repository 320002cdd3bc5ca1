package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImagesPerColor is the number of images each color variant contributes to
// Images. The block Images[i*6 : i*6+6] belongs to Colors[i].
const ImagesPerColor = 6

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"itemName" json:"itemName"`
	Price       Decimal            `bson:"itemPrice" json:"itemPrice"`
	Discount    Decimal            `bson:"itemDiscount" json:"itemDiscount"`
	Description string             `bson:"itemDescription" json:"itemDescription"`
	Tag         string             `bson:"itemTag" json:"itemTag"`
	Category    string             `bson:"itemCategory" json:"itemCategory"`
	Gender      string             `bson:"itemGender" json:"itemGender"`
	Sizes       StringList         `bson:"itemAvailableSizes" json:"itemAvailableSizes"`
	Colors      []string           `bson:"itemAvailableColors" json:"itemAvailableColors"`
	Images      []string           `bson:"itemAvailableImages" json:"itemAvailableImages"`
	Available   bool               `bson:"available" json:"available"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
