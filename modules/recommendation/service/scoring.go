package service

import (
	"sort"
	"strings"

	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/dto"
	"github.com/neimd2025/web-ndrop-sub000/modules/recommendation/entity"
)

const companyBonus = 0.1

// Score is the Jaccard similarity of the two tag sets plus a bonus when both
// work at the same company.
func Score(me, other *entity.Candidate) float64 {
	score := jaccard(me.Tags(), other.Tags())
	if entity.SameCompany(me.Company, other.Company) {
		score += companyBonus
	}
	return score
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for t := range a {
		if _, ok := b[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}

// Rank orders candidates by score, then by name, and keeps the first limit.
func Rank(me *entity.Candidate, candidates []entity.Candidate, limit int) []dto.RecommendationItem {
	items := make([]dto.RecommendationItem, len(candidates))
	for i := range candidates {
		items[i] = toItem(&candidates[i], Score(me, &candidates[i]), "")
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		ni, nj := strings.ToLower(items[i].FullName), strings.ToLower(items[j].FullName)
		if ni != nj {
			return ni < nj
		}
		return items[i].UserID.String() < items[j].UserID.String()
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func toItem(c *entity.Candidate, score float64, reason string) dto.RecommendationItem {
	return dto.RecommendationItem{
		UserID:          c.UserID,
		CardID:          c.CardID,
		FullName:        c.FullName,
		Company:         c.Company,
		JobTitle:        c.JobTitle,
		ProfileImageURL: c.ProfileImageURL,
		Keywords:        nonNil(c.Keywords),
		Interests:       nonNil(c.Interests),
		Hobbies:         nonNil(c.Hobbies),
		Score:           score,
		Reason:          reason,
	}
}

func toAIProfile(c *entity.Candidate) dto.AIProfile {
	return dto.AIProfile{
		UserID:       c.UserID,
		FullName:     c.FullName,
		Company:      c.Company,
		JobTitle:     c.JobTitle,
		Introduction: c.Introduction,
		MBTI:         c.MBTI,
		Keywords:     nonNil(c.Keywords),
		Interests:    nonNil(c.Interests),
		Hobbies:      nonNil(c.Hobbies),
	}
}

func nonNil(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}
