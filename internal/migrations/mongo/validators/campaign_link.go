package validators

import "go.mongodb.org/mongo-driver/bson"

var CampaignLinkValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"record", "final_url", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":   bson.M{"bsonType": "objectId"},
			"label": bson.M{"bsonType": "string"},
			"record": bson.M{
				"bsonType": "object",
				"required": []string{"website_url", "source", "medium"},
				"properties": bson.M{
					"website_url": bson.M{"bsonType": "string"},
					"source":      bson.M{"bsonType": "string"},
					"medium":      bson.M{"bsonType": "string"},
					"name":        bson.M{"bsonType": "string"},
					"id":          bson.M{"bsonType": "string"},
					"term":        bson.M{"bsonType": "string"},
					"content":     bson.M{"bsonType": "string"},
				},
			},
			"final_url":  bson.M{"bsonType": "string"},
			"warnings":   bson.M{"bsonType": "object"},
			"notices":    bson.M{"bsonType": "array"},
			"reachable":  bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
