package accounts

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/database"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

// Kind describes one of the four account collections
type Kind struct {
	Role       jwt.Role
	Collection string
	Path       string
	Label      string
	// Followable kinds carry a follower list and counter
	Followable bool
	// AdminList restricts getall to admins
	AdminList bool
	// AdminRead restricts getbyid to admins
	AdminRead bool
}

var (
	Users = Kind{
		Role:       jwt.RoleUser,
		Collection: database.UsersCollection,
		Path:       "/user",
		Label:      "User",
		AdminList:  true,
	}
	NGOs = Kind{
		Role:       jwt.RoleNGO,
		Collection: database.NGOsCollection,
		Path:       "/ngo",
		Label:      "NGO",
		Followable: true,
	}
	SocialWorkers = Kind{
		Role:       jwt.RoleSocialWorker,
		Collection: database.SocialWorkersCollection,
		Path:       "/socialworker",
		Label:      "Social worker",
		Followable: true,
	}
	Admins = Kind{
		Role:       jwt.RoleAdmin,
		Collection: database.AdminsCollection,
		Path:       "/admin",
		Label:      "Admin",
		AdminList:  true,
		AdminRead:  true,
	}
)

// AllKinds lists every account kind in mount order
func AllKinds() []Kind {
	return []Kind{Users, NGOs, SocialWorkers, Admins}
}

// Follower is one entry of a followable account's follower list
type Follower struct {
	FollowerID   primitive.ObjectID `bson:"followerId" json:"followerId"`
	FollowerType jwt.Role           `bson:"followerType" json:"followerType"`
	FollowerName string             `bson:"followerName" json:"followerName"`
	FollowedAt   time.Time          `bson:"followedAt" json:"followedAt"`
}

// Account is the stored document of every kind. Kind specific fields are
// omitted for kinds that do not use them.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`

	// NGO
	RegistrationNumber string   `bson:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`
	Website            string   `bson:"website,omitempty" json:"website,omitempty"`
	FocusAreas         []string `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`

	// Social worker
	Expertise    []string `bson:"expertise,omitempty" json:"expertise,omitempty"`
	Organization string   `bson:"organization,omitempty" json:"organization,omitempty"`

	// NGO and social worker
	IsVerified    *bool      `bson:"isVerified,omitempty" json:"isVerified,omitempty"`
	Followers     []Follower `bson:"followers,omitempty" json:"followers,omitempty"`
	FollowerCount *int       `bson:"followerCount,omitempty" json:"followerCount,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Filter holds the equality filters accepted by getall
type Filter struct {
	Name       string
	Email      string
	IsVerified *bool
}

// AddRequest for POST /{kind}/add. Fields that do not apply to the kind are
// ignored.
type AddRequest struct {
	Name               string   `json:"name" binding:"required,max=120"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required,max=72"`
	Phone              string   `json:"phone" binding:"omitempty,phone"`
	Address            string   `json:"address" binding:"max=300"`
	Bio                string   `json:"bio" binding:"max=1000"`
	ProfileImage       string   `json:"profileImage" binding:"omitempty,weburl"`
	RegistrationNumber string   `json:"registrationNumber" binding:"max=60"`
	Website            string   `json:"website" binding:"omitempty,weburl"`
	FocusAreas         []string `json:"focusAreas" binding:"max=20"`
	Expertise          []string `json:"expertise" binding:"max=20"`
	Organization       string   `json:"organization" binding:"max=120"`
}

// UpdateRequest for PUT /{kind}/update/:id. Only non-nil fields are set.
type UpdateRequest struct {
	Name               *string   `json:"name" binding:"omitempty,min=1,max=120"`
	Email              *string   `json:"email" binding:"omitempty,email"`
	Password           *string   `json:"password" binding:"omitempty,min=1,max=72"`
	Phone              *string   `json:"phone" binding:"omitempty,phone"`
	Address            *string   `json:"address" binding:"omitempty,max=300"`
	Bio                *string   `json:"bio" binding:"omitempty,max=1000"`
	ProfileImage       *string   `json:"profileImage" binding:"omitempty,weburl"`
	RegistrationNumber *string   `json:"registrationNumber" binding:"omitempty,max=60"`
	Website            *string   `json:"website" binding:"omitempty,weburl"`
	FocusAreas         *[]string `json:"focusAreas" binding:"omitempty,max=20"`
	Expertise          *[]string `json:"expertise" binding:"omitempty,max=20"`
	Organization       *string   `json:"organization" binding:"omitempty,max=120"`
	// IsVerified may only be changed by an admin
	IsVerified *bool `json:"isVerified"`
}

// LoginRequest for POST /{kind}/authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by a successful authenticate
type AuthResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	Account   *Account `json:"account"`
}
