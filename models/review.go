package models

type Review struct {
	ReviewId       int    `json:"review_id" bson:"review_id"`
	UserId         int    `json:"user_id" bson:"user_id"`
	Type           string `json:"type" bson:"type"`
	Rate           int    `json:"rate" bson:"rate"`
	Title          string `json:"title" bson:"title"`
	Comment        string `json:"comment" bson:"comment"`
	ReviewedItemId string `json:"reviewed_item_id" bson:"reviewed_item_id"`
}
