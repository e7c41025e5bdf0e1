package cases

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

func orEmpty(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}

func updateFields(req *UpdateRequest) bson.M {
	set := bson.M{}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		set["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.BeneficiaryName != nil {
		set["beneficiaryName"] = *req.BeneficiaryName
	}
	if req.Images != nil {
		set["images"] = orEmpty(*req.Images)
	}
	if req.Videos != nil {
		set["videos"] = orEmpty(*req.Videos)
	}
	if req.Documents != nil {
		set["documents"] = orEmpty(*req.Documents)
	}
	if req.IsPublic != nil {
		set["isPublic"] = *req.IsPublic
	}
	return set
}
