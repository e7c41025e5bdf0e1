package posts

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func updateFields(req *UpdateRequest) bson.M {
	set := bson.M{}
	if req.Title != nil {
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		set["content"] = *req.Content
	}
	if req.Type != nil {
		set["type"] = *req.Type
	}
	if req.MediaURL != nil {
		set["mediaUrl"] = *req.MediaURL
	}
	if req.Tags != nil {
		set["tags"] = normalizeTags(*req.Tags)
	}
	return set
}
