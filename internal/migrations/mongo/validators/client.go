package validators

import "go.mongodb.org/mongo-driver/bson"

var ClientValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"first_name",
			"last_name",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$",
			},

			"first_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"last_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType": "string",
				"pattern":  "^\\+[1-9][0-9]{7,14}$",
			},

			"country": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"has_attachment": bson.M{
				"bsonType": "bool",
			},

			"attachment_url": bson.M{
				"bsonType": "string",
			},

			"attachment_name": bson.M{
				"bsonType":  "string",
				"maxLength": 255,
			},

			"attachment_key": bson.M{
				"bsonType":  "string",
				"maxLength": 512,
			},

			"reservations": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "start", "end", "status"},
					"properties": bson.M{
						"id": bson.M{
							"bsonType": "string",
						},
						"start": bson.M{
							"bsonType": "string",
							"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
						},
						"end": bson.M{
							"bsonType": "string",
							"pattern":  "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
						},
						"status": bson.M{
							"enum": []string{"confirmed", "pending", "cancelled"},
						},
						"notes": bson.M{
							"bsonType":  "string",
							"maxLength": 2000,
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
