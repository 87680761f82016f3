// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"strings"
	"time"
)

const (
	// ReviewKind is the comment kind that marks a customer product review.
	ReviewKind = "review"
	// ProductType is the content type a review must be attached to.
	ProductType = "product"
)

// Review represents a customer-submitted rating and comment attached to a product.
type Review struct {
	ID           int64     `db:"id" json:"id"`
	ProductID    int64     `db:"product_id" json:"product_id"`
	ProductTitle string    `db:"product_title" json:"product_title"`
	ProductType  string    `db:"product_type" json:"product_type"`
	Kind         string    `db:"kind" json:"kind"`
	AuthorName   string    `db:"author_name" json:"author_name"`
	AuthorEmail  string    `db:"author_email" json:"author_email"`
	Body         string    `db:"body" json:"body"`
	Rating       int       `db:"rating" json:"rating"`
	Approved     bool      `db:"approved" json:"approved"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// IsProductReview reports whether the record is a review attached to a product,
// as opposed to a plain comment or a review on some other content type.
func (r *Review) IsProductReview() bool {
	if r == nil {
		return false
	}
	return r.Kind == ReviewKind && r.ProductType == ProductType
}

// Reply is the single threaded merchant response to a Review.
type Reply struct {
	ID           int64     `db:"id"`
	ReviewID     int64     `db:"review_id"`
	ProductID    int64     `db:"product_id"`
	AuthorUserID int64     `db:"author_user_id"`
	AuthorName   string    `db:"author_name"`
	AuthorEmail  string    `db:"author_email"`
	Body         string    `db:"body"`
	Approved     bool      `db:"approved"`
	CreatedAt    time.Time `db:"created_at"`
}

// Actor is the identity stamped onto replies as their author.
type Actor struct {
	UserID      int64
	DisplayName string
	Email       string
}

// NewReply builds an approved reply to review authored by actor.
func NewReply(review *Review, actor Actor, body string, now time.Time) *Reply {
	return &Reply{
		ReviewID:     review.ID,
		ProductID:    review.ProductID,
		AuthorUserID: actor.UserID,
		AuthorName:   strings.TrimSpace(actor.DisplayName),
		AuthorEmail:  strings.TrimSpace(actor.Email),
		Body:         body,
		Approved:     true,
		CreatedAt:    now,
	}
}
