package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greeklink/greeklink/internal/app/models/dto"
)

func strp(s string) *string { return &s }

func TestCompletenessScore_EmptyProjection(t *testing.T) {
	p := &dto.AlumniProjection{}
	assert.Equal(t, 0, CompletenessScore(p))
}

func TestCompletenessScore_PlaceholdersDoNotCount(t *testing.T) {
	empty := CompletenessScore(&dto.AlumniProjection{})

	for _, placeholder := range []string{"N/A", "tbd", "Unknown", "null", "Not Specified", "  "} {
		p := &dto.AlumniProjection{
			Company:  placeholder,
			JobTitle: placeholder,
			Industry: placeholder,
			Location: placeholder,
		}
		assert.Equal(t, empty, CompletenessScore(p), "placeholder %q should not score", placeholder)
	}
}

func TestCompletenessScore_MonotonicInFields(t *testing.T) {
	p := dto.AlumniProjection{FullName: "Jane Doe"}
	base := CompletenessScore(&p)

	p.JobTitle = "Engineer"
	withJob := CompletenessScore(&p)
	assert.Greater(t, withJob, base)

	p.Company = "Acme"
	withCompany := CompletenessScore(&p)
	assert.Greater(t, withCompany, withJob)

	p.Email = strp("jane@example.com")
	withEmail := CompletenessScore(&p)
	assert.Greater(t, withEmail, withCompany)

	p.Verified = true
	p.HasProfile = true
	p.Tags = []string{"mentor"}
	p.MutualConnections = []dto.MutualConnectionPreview{{UserID: 7}}
	assert.Greater(t, CompletenessScore(&p), withEmail)
}

func TestCompletenessScore_RedactedContactDoesNotScore(t *testing.T) {
	visible := dto.AlumniProjection{FullName: "Jane Doe", Email: strp("jane@example.com")}
	redacted := dto.AlumniProjection{FullName: "Jane Doe"}
	assert.Greater(t, CompletenessScore(&visible), CompletenessScore(&redacted))
}

func TestRankAlumni_ScoreDescending(t *testing.T) {
	alumni := []dto.AlumniProjection{
		{ID: 1, FullName: "Sparse Person"},
		{ID: 2, FullName: "Rich Person", Chapter: "Alpha", GraduationYear: 2015,
			JobTitle: "CTO", Company: "Acme", Industry: "Tech", Verified: true},
		{ID: 3, FullName: "Middling Person", JobTitle: "Analyst"},
	}

	RankAlumni(alumni)

	assert.Equal(t, int64(2), alumni[0].ID)
	assert.Equal(t, int64(3), alumni[1].ID)
	assert.Equal(t, int64(1), alumni[2].ID)
}

func TestRankAlumni_TiebreakAvatarThenName(t *testing.T) {
	// Same completeness score on every pair, so the lower tiers decide.
	alumni := []dto.AlumniProjection{
		{ID: 1, FullName: "zeta"},
		{ID: 2, FullName: "Alpha"},
	}
	RankAlumni(alumni)
	assert.Equal(t, int64(2), alumni[0].ID, "equal scores fall back to name ascending")

	// Avatar presence outranks the name tiebreak but costs score points,
	// so balance it with an equally weighted field on the other side.
	withAvatar := []dto.AlumniProjection{
		{ID: 1, FullName: "aaa"},
		{ID: 2, FullName: "zzz", AvatarURL: "https://cdn.example.com/a.png"},
	}
	RankAlumni(withAvatar)
	assert.Equal(t, int64(2), withAvatar[0].ID, "higher score wins before the name tiebreak")
}

func TestRankAlumni_ProfessionalInfoTiebreak(t *testing.T) {
	// JobTitle weighs 12, email 10 + phone 6 = 16. Give the second record
	// contact info only: it scores higher and must still come first, while
	// between equal scores professional info would win.
	a := dto.AlumniProjection{ID: 1, FullName: "aaa", JobTitle: "Engineer"}
	b := dto.AlumniProjection{ID: 2, FullName: "bbb", Email: strp("x@y.com"), Phone: strp("(555) 123-4567")}

	alumni := []dto.AlumniProjection{a, b}
	RankAlumni(alumni)
	assert.Equal(t, int64(2), alumni[0].ID)
}

func TestRankAlumni_StableForEqualRecords(t *testing.T) {
	alumni := []dto.AlumniProjection{
		{ID: 1, FullName: "Same Name"},
		{ID: 2, FullName: "Same Name"},
		{ID: 3, FullName: "Same Name"},
	}
	RankAlumni(alumni)
	assert.Equal(t, []int64{1, 2, 3}, []int64{alumni[0].ID, alumni[1].ID, alumni[2].ID})
}
