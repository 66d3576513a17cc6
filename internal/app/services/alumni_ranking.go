package services

import (
	"sort"
	"strings"

	"github.com/greeklink/greeklink/internal/app/models/dto"
)

// Completeness weights per populated, semantically valid field.
const (
	weightName           = 10
	weightChapter        = 8
	weightGradYear       = 7
	weightAvatar         = 5
	weightJobTitle       = 12
	weightCompany        = 10
	weightIndustry       = 8
	weightEmail          = 10
	weightPhone          = 6
	weightLocation       = 4
	weightDescription    = 8
	weightMutualPresent  = 4
	weightTagsPresent    = 3
	weightVerified       = 3
	weightLinkedProfile  = 2
)

// placeholders are values that count as empty for scoring purposes.
// "Not Specified" is the not-null-safe default written by the profile
// sync and must not inflate scores.
var placeholders = map[string]struct{}{
	"n/a":           {},
	"tbd":           {},
	"unknown":       {},
	"null":          {},
	"not specified": {},
}

// isValidText reports whether a text field is populated with a real value
func isValidText(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return false
	}
	_, placeholder := placeholders[strings.ToLower(trimmed)]
	return !placeholder
}

// isValidYear reports whether a numeric year field is populated
func isValidYear(year int) bool {
	return year > 0
}

// CompletenessScore maps an alumni projection to a heuristic integer
// summarizing how many fields are filled with non-placeholder values.
// The score is derived per request and never stored.
func CompletenessScore(p *dto.AlumniProjection) int {
	score := 0

	if isValidText(p.FullName) {
		score += weightName
	}
	if isValidText(p.Chapter) {
		score += weightChapter
	}
	if isValidYear(p.GraduationYear) {
		score += weightGradYear
	}
	if isValidText(p.AvatarURL) {
		score += weightAvatar
	}

	if isValidText(p.JobTitle) {
		score += weightJobTitle
	}
	if isValidText(p.Company) {
		score += weightCompany
	}
	if isValidText(p.Industry) {
		score += weightIndustry
	}

	if p.Email != nil && isValidText(*p.Email) {
		score += weightEmail
	}
	if p.Phone != nil && isValidText(*p.Phone) {
		score += weightPhone
	}
	if isValidText(p.Location) {
		score += weightLocation
	}

	if isValidText(p.Description) {
		score += weightDescription
	}
	if len(p.MutualConnections) > 0 {
		score += weightMutualPresent
	}
	if len(p.Tags) > 0 {
		score += weightTagsPresent
	}

	if p.Verified {
		score += weightVerified
	}
	if p.HasProfile {
		score += weightLinkedProfile
	}

	return score
}

// hasProfessionalInfo reports whether a projection carries a job title or
// company worth surfacing.
func hasProfessionalInfo(p *dto.AlumniProjection) bool {
	return isValidText(p.JobTitle) || isValidText(p.Company)
}

// RankAlumni sorts projections in place by the five-level comparator:
// completeness score descending, then avatar presence, professional
// info presence, mutual connection presence, and finally full name
// ascending. The comparator is a total order.
func RankAlumni(alumni []dto.AlumniProjection) {
	scores := make(map[int64]int, len(alumni))
	for i := range alumni {
		scores[alumni[i].ID] = CompletenessScore(&alumni[i])
	}

	sort.SliceStable(alumni, func(i, j int) bool {
		if scores[alumni[i].ID] != scores[alumni[j].ID] {
			return scores[alumni[i].ID] > scores[alumni[j].ID]
		}

		iAvatar, jAvatar := isValidText(alumni[i].AvatarURL), isValidText(alumni[j].AvatarURL)
		if iAvatar != jAvatar {
			return iAvatar
		}

		iPro, jPro := hasProfessionalInfo(&alumni[i]), hasProfessionalInfo(&alumni[j])
		if iPro != jPro {
			return iPro
		}

		iMutual, jMutual := len(alumni[i].MutualConnections) > 0, len(alumni[j].MutualConnections) > 0
		if iMutual != jMutual {
			return iMutual
		}

		return strings.ToLower(alumni[i].FullName) < strings.ToLower(alumni[j].FullName)
	})
}
