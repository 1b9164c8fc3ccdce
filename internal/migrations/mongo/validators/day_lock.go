package validators

import "go.mongodb.org/mongo-driver/bson"

var DayLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "expires_at"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^day_lock_[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},
			"expires_at": bson.M{
				"bsonType": "date",
			},
			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
