package domain

import "time"

// MaxCommentLength bounds the content of a visitor comment, counted in
// characters.
const MaxCommentLength = 500

// CommentAuthor is the inline identity a visitor supplies with a comment.
// It is not linked to a user account.
type CommentAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Comment struct {
	ID         string
	ObituaryID string
	Content    string
	Author     CommentAuthor
	IsApproved bool // false until an admin approves it
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
