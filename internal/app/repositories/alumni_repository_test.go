package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/app/models/dto"
)

func TestBuildListQuery_NoFilters(t *testing.T) {
	sql, args, err := buildListQuery(&dto.AlumniDirectoryQuery{
		GraduationYear: dto.GraduationYearFilter{Disabled: true},
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM alumni a")
	assert.Contains(t, sql, "LEFT JOIN profiles p ON p.id = a.user_id")
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY a.id")
	assert.Empty(t, args)
}

func TestBuildListQuery_ChapterByID_SingleQuery(t *testing.T) {
	sql, args, err := buildListQuery(&dto.AlumniDirectoryQuery{
		Chapter:        models.ChapterRef{Kind: models.ChapterRefByID, ID: 7},
		GraduationYear: dto.GraduationYearFilter{Disabled: true},
	})
	require.NoError(t, err)

	// Both join keys live in one OR predicate of one statement, so a row
	// matched through either key appears exactly once.
	assert.Equal(t, 1, strings.Count(sql, "SELECT a.id"))
	assert.Contains(t, sql, "a.chapter_id = $1")
	assert.Contains(t, sql, "a.chapter_name = (SELECT name FROM chapters WHERE id = $2)")
	assert.Equal(t, []interface{}{int64(7), int64(7)}, args)
}

func TestBuildListQuery_ChapterByName_SingleQuery(t *testing.T) {
	sql, args, err := buildListQuery(&dto.AlumniDirectoryQuery{
		Chapter:        models.ChapterRef{Kind: models.ChapterRefByName, Name: "Alpha Chapter"},
		GraduationYear: dto.GraduationYearFilter{Disabled: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(sql, "SELECT a.id"))
	assert.Contains(t, sql, "a.chapter_name ILIKE")
	assert.Contains(t, sql, "a.chapter_id IN (SELECT id FROM chapters WHERE name ILIKE")
	assert.Equal(t, []interface{}{"Alpha Chapter", "Alpha Chapter"}, args)
}

func TestBuildListQuery_GraduationYearVariants(t *testing.T) {
	sql, args, err := buildListQuery(&dto.AlumniDirectoryQuery{
		GraduationYear: dto.GraduationYearFilter{Older: true},
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "a.graduation_year <= $1")
	assert.Equal(t, []interface{}{dto.OlderCutoffYear}, args)

	sql, args, err = buildListQuery(&dto.AlumniDirectoryQuery{
		GraduationYear: dto.GraduationYearFilter{Year: 2015},
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "a.graduation_year = $1")
	assert.Equal(t, []interface{}{2015}, args)

	// Disabled filter adds no predicate
	sql, _, err = buildListQuery(&dto.AlumniDirectoryQuery{
		GraduationYear: dto.GraduationYearFilter{Disabled: true},
	})
	require.NoError(t, err)
	assert.NotContains(t, sql, "a.graduation_year <=")
	assert.NotContains(t, sql, "a.graduation_year =")
}

func TestBuildListQuery_SearchAndHiring(t *testing.T) {
	hiring := true
	sql, args, err := buildListQuery(&dto.AlumniDirectoryQuery{
		Search:         "doe",
		ActivelyHiring: &hiring,
		GraduationYear: dto.GraduationYearFilter{Disabled: true},
	})
	require.NoError(t, err)

	assert.Contains(t, sql, "a.first_name ILIKE")
	assert.Contains(t, sql, "a.job_title ILIKE")
	assert.Contains(t, sql, "a.actively_hiring =")
	assert.Contains(t, args, "%doe%")
	assert.Contains(t, args, true)
}
