package cases

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

const (
	StatusPending  = "Pending"
	StatusVerified = "Verified"
	StatusRejected = "Rejected"
)

// CaseRecord documents a beneficiary case handled by an NGO or social worker
type CaseRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description" json:"description"`
	Category           string             `bson:"category" json:"category"`
	Location           string             `bson:"location,omitempty" json:"location,omitempty"`
	BeneficiaryName    string             `bson:"beneficiaryName,omitempty" json:"beneficiaryName,omitempty"`
	Images             []string           `bson:"images" json:"images"`
	Videos             []string           `bson:"videos" json:"videos"`
	Documents          []string           `bson:"documents" json:"documents"`
	VerificationStatus string             `bson:"verificationStatus" json:"verificationStatus"`
	VerificationNote   string             `bson:"verificationNote,omitempty" json:"verificationNote,omitempty"`
	IsPublic           bool               `bson:"isPublic" json:"isPublic"`
	AuthorID           primitive.ObjectID `bson:"authorId" json:"authorId"`
	AuthorType         jwt.Role           `bson:"authorType" json:"authorType"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Filter holds the equality filters of getall and getbyauthor
type Filter struct {
	Category           string
	VerificationStatus string
	AuthorID           *primitive.ObjectID
	PublicOnly         bool
}

// AddRequest for POST /casemanagement/add
type AddRequest struct {
	Title           string   `json:"title" binding:"required,max=200"`
	Description     string   `json:"description" binding:"required,max=5000"`
	Category        string   `json:"category" binding:"required,max=60"`
	Location        string   `json:"location" binding:"max=200"`
	BeneficiaryName string   `json:"beneficiaryName" binding:"max=120"`
	Images          []string `json:"images" binding:"max=20,dive,weburl"`
	Videos          []string `json:"videos" binding:"max=10,dive,weburl"`
	Documents       []string `json:"documents" binding:"max=20,dive,weburl"`
	// IsPublic defaults to true
	IsPublic *bool `json:"isPublic"`
}

// UpdateRequest for PUT /casemanagement/update/:id
type UpdateRequest struct {
	Title           *string   `json:"title" binding:"omitempty,min=1,max=200"`
	Description     *string   `json:"description" binding:"omitempty,min=1,max=5000"`
	Category        *string   `json:"category" binding:"omitempty,min=1,max=60"`
	Location        *string   `json:"location" binding:"omitempty,max=200"`
	BeneficiaryName *string   `json:"beneficiaryName" binding:"omitempty,max=120"`
	Images          *[]string `json:"images" binding:"omitempty,max=20,dive,weburl"`
	Videos          *[]string `json:"videos" binding:"omitempty,max=10,dive,weburl"`
	Documents       *[]string `json:"documents" binding:"omitempty,max=20,dive,weburl"`
	IsPublic        *bool     `json:"isPublic"`
}

// VerifyRequest for PUT /casemanagement/verify/:id
type VerifyRequest struct {
	VerificationStatus string `json:"verificationStatus" binding:"required,casestatus"`
	VerificationNote   string `json:"verificationNote" binding:"max=1000"`
}
