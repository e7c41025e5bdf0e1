package accounts

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// normalizeEmail lower-cases and trims so the unique index sees one spelling
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newAccount maps an add request onto a document for kind. The password is
// expected to be hashed already.
func newAccount(kind Kind, req *AddRequest, passwordHash string) *Account {
	acc := &Account{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		Password:     passwordHash,
		Phone:        req.Phone,
		Address:      req.Address,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	}

	switch kind.Role {
	case NGOs.Role:
		acc.RegistrationNumber = req.RegistrationNumber
		acc.Website = req.Website
		acc.FocusAreas = req.FocusAreas
	case SocialWorkers.Role:
		acc.Expertise = req.Expertise
		acc.Organization = req.Organization
	}

	if kind.Followable {
		verified, count := false, 0
		acc.IsVerified = &verified
		acc.FollowerCount = &count
		acc.Followers = []Follower{}
	}
	return acc
}

// updateFields builds the $set document for an update request. Fields that
// do not apply to kind are dropped.
func updateFields(kind Kind, req *UpdateRequest, passwordHash string, isAdmin bool) bson.M {
	set := bson.M{}
	if req.Name != nil {
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		set["email"] = normalizeEmail(*req.Email)
	}
	if passwordHash != "" {
		set["password"] = passwordHash
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Address != nil {
		set["address"] = *req.Address
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.ProfileImage != nil {
		set["profileImage"] = *req.ProfileImage
	}

	switch kind.Role {
	case NGOs.Role:
		if req.RegistrationNumber != nil {
			set["registrationNumber"] = *req.RegistrationNumber
		}
		if req.Website != nil {
			set["website"] = *req.Website
		}
		if req.FocusAreas != nil {
			set["focusAreas"] = *req.FocusAreas
		}
	case SocialWorkers.Role:
		if req.Expertise != nil {
			set["expertise"] = *req.Expertise
		}
		if req.Organization != nil {
			set["organization"] = *req.Organization
		}
	}

	if kind.Followable && isAdmin && req.IsVerified != nil {
		set["isVerified"] = *req.IsVerified
	}
	return set
}
