package entity

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Candidate is a participant's business card as seen by the matcher.
type Candidate struct {
	UserID          uuid.UUID      `db:"user_id"`
	CardID          uuid.UUID      `db:"card_id"`
	FullName        string         `db:"full_name"`
	Company         string         `db:"company"`
	JobTitle        string         `db:"job_title"`
	Introduction    string         `db:"introduction"`
	MBTI            string         `db:"mbti"`
	Keywords        pq.StringArray `db:"keywords"`
	Interests       pq.StringArray `db:"interests"`
	Hobbies         pq.StringArray `db:"hobbies"`
	ProfileImageURL *string        `db:"profile_image_url"`
}

// Tags is the lowercased union of keywords, interests and hobbies.
func (c *Candidate) Tags() map[string]struct{} {
	tags := make(map[string]struct{}, len(c.Keywords)+len(c.Interests)+len(c.Hobbies))
	for _, list := range [][]string{c.Keywords, c.Interests, c.Hobbies} {
		for _, t := range list {
			if t = normalize(t); t != "" {
				tags[t] = struct{}{}
			}
		}
	}
	return tags
}
