package models

// User is a document of the users collection. Reviews holds the review_id of
// every review the user wrote, in the order they were generated.
type User struct {
	UserId   int           `json:"user_id" bson:"user_id"`
	UserName string        `json:"user_name" bson:"user_name"`
	Password string        `json:"password" bson:"password"`
	Img      string        `json:"img" bson:"img"`
	Admin    int           `json:"admin" bson:"admin"`
	Address  []string      `json:"address" bson:"address"`
	Orders   []interface{} `json:"orders" bson:"orders"`
	Reviews  []int         `json:"reviews" bson:"reviews"`
}
