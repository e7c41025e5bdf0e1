package client

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind names an account collection on the server
type Kind string

const (
	KindUser         Kind = "user"
	KindNGO          Kind = "ngo"
	KindSocialWorker Kind = "socialworker"
	KindAdmin        Kind = "admin"
)

// ParseKind accepts the path names used by the API
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindUser, KindNGO, KindSocialWorker, KindAdmin:
		return k, nil
	}
	return "", fmt.Errorf("unknown account kind %q", s)
}

// Followable reports whether accounts of this kind can be followed
func (k Kind) Followable() bool {
	return k == KindNGO || k == KindSocialWorker
}

// envelope mirrors the server's response body
type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Code       string          `json:"code"`
	Data       json.RawMessage `json:"data"`
}

type Account struct {
	ID                 string     `json:"_id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone,omitempty"`
	Address            string     `json:"address,omitempty"`
	Bio                string     `json:"bio,omitempty"`
	ProfileImage       string     `json:"profileImage,omitempty"`
	RegistrationNumber string     `json:"registrationNumber,omitempty"`
	Website            string     `json:"website,omitempty"`
	FocusAreas         []string   `json:"focusAreas,omitempty"`
	Expertise          []string   `json:"expertise,omitempty"`
	Organization       string     `json:"organization,omitempty"`
	IsVerified         *bool      `json:"isVerified,omitempty"`
	FollowerCount      *int       `json:"followerCount,omitempty"`
	Followers          []Follower `json:"followers,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// RegisterRequest is the body of /{kind}/add
type RegisterRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	Phone              string   `json:"phone,omitempty"`
	Address            string   `json:"address,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	RegistrationNumber string   `json:"registrationNumber,omitempty"`
	Website            string   `json:"website,omitempty"`
	FocusAreas         []string `json:"focusAreas,omitempty"`
	Expertise          []string `json:"expertise,omitempty"`
	Organization       string   `json:"organization,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	Account   *Account `json:"account"`
}

type Follower struct {
	FollowerID   string    `json:"followerId"`
	FollowerType string    `json:"followerType"`
	FollowerName string    `json:"followerName"`
	FollowedAt   time.Time `json:"followedAt"`
}

// FollowResult is returned by follow and unfollow
type FollowResult struct {
	IsFollowing   bool `json:"isFollowing"`
	FollowerCount int  `json:"followerCount"`
}

type Followers struct {
	Followers     []Follower `json:"followers"`
	FollowerCount int        `json:"followerCount"`
}

type Post struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	MediaURL   string    `json:"mediaUrl,omitempty"`
	AuthorID   string    `json:"authorId"`
	AuthorType string    `json:"authorType"`
	AuthorName string    `json:"authorName"`
	Likes      int       `json:"likes"`
	Views      int       `json:"views"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PostFilter narrows /posts/getall; empty fields are not sent
type PostFilter struct {
	Type       string
	AuthorID   string
	AuthorType string
	Tag        string
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type FeedbackRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
	Category string `json:"category,omitempty"`
	Comment  string `json:"comment"`
}

// Submission is the stored form returned by contact and feedback
type Submission struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
