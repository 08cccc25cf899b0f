package models

// Queue holds the connection settings of the broker a seed event is
// published to. Not every field applies to every broker.
type Queue struct {
	Name string `json:"name" bson:"name"`

	Broker    string `json:"broker" bson:"broker"`       // kafka, rabbitmq
	Username  string `json:"username" bson:"username"`   // kafka, rabbitmq
	Password  string `json:"password" bson:"password"`   // kafka, rabbitmq
	Topic     string `json:"topic" bson:"topic"`         // kafka, rabbitmq, SQS
	Mechanism string `json:"mechanism" bson:"mechanism"` // kafka
	Security  string `json:"security" bson:"security"`   // kafka

	Exchange string `json:"exchange" bson:"exchange"` // rabbitmq

	Region    string `json:"region" bson:"region"`         // AWS
	AccessKey string `json:"access_key" bson:"access_key"` // AWS
	Secret    string `json:"secret" bson:"secret"`         // AWS

	Url      string `json:"url" bson:"url"`           // webhook
	CloudKey string `json:"cloudkey" bson:"cloudkey"` // webhook
}
