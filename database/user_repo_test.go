package database_test

import (
	"testing"

	"github.com/rpupo63/student-directory-backend/database"
	"github.com/rpupo63/student-directory-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userIDs(users []*models.User) []uint {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestSearchSkillRatingConjunction(t *testing.T) {
	d := newTestDatabase(t)
	python := createSkill(t, d, "Python")
	react := createSkill(t, d, "React")

	alice := createUser(t, d, "alice", "Alice", 2, "Computer Science", nil)
	bob := createUser(t, d, "bob", "Bob", 2, "Computer Science", nil)
	giveSkill(t, d, alice, python, 5)
	giveSkill(t, d, alice, react, 4)
	giveSkill(t, d, bob, python, 2)
	giveSkill(t, d, bob, react, 5)

	t.Run("single threshold", func(t *testing.T) {
		users, err := d.UserRepo().Search(database.StudentFilter{
			SkillRatings: []database.SkillRating{{Name: "Python", MinRating: 3}},
		})
		require.NoError(t, err)
		assert.Equal(t, []uint{alice.ID}, userIDs(users))
	})

	t.Run("every threshold must hold", func(t *testing.T) {
		users, err := d.UserRepo().Search(database.StudentFilter{
			SkillRatings: []database.SkillRating{
				{Name: "Python", MinRating: 2},
				{Name: "React", MinRating: 5},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []uint{bob.ID}, userIDs(users))
	})

	t.Run("unheld skill excludes", func(t *testing.T) {
		users, err := d.UserRepo().Search(database.StudentFilter{
			SkillRatings: []database.SkillRating{{Name: "Django", MinRating: 1}},
		})
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestSearchTermMatchesNameOrSkill(t *testing.T) {
	d := newTestDatabase(t)
	alexandrite := createSkill(t, d, "Alexandrite")

	alex := createUser(t, d, "alex", "Alex", 1, "Computer Science", nil)
	zed := createUser(t, d, "zed", "Zed", 1, "Computer Science", nil)
	createUser(t, d, "mira", "Mira", 1, "Computer Science", nil)
	giveSkill(t, d, zed, alexandrite, 3)

	users, err := d.UserRepo().Search(database.StudentFilter{Term: "alex"})
	require.NoError(t, err)
	assert.Equal(t, []uint{alex.ID, zed.ID}, userIDs(users))
}

func TestSearchDeduplicatesMultiSkillMatch(t *testing.T) {
	d := newTestDatabase(t)
	js := createSkill(t, d, "JavaScript")
	java := createSkill(t, d, "Java")

	dev := createUser(t, d, "dev", "Devika", 3, "Computer Science", nil)
	giveSkill(t, d, dev, js, 4)
	giveSkill(t, d, dev, java, 4)

	// Both skills match "java"; the user must still appear exactly once.
	users, err := d.UserRepo().Search(database.StudentFilter{Term: "java"})
	require.NoError(t, err)
	assert.Equal(t, []uint{dev.ID}, userIDs(users))
}

func TestSearchYearFilter(t *testing.T) {
	d := newTestDatabase(t)
	first := createUser(t, d, "y1", "Year One", 1, "Mechanical", nil)
	second := createUser(t, d, "y2", "Year Two", 2, "Mechanical", nil)
	third := createUser(t, d, "y3", "Year Three", 3, "Mechanical", nil)

	users, err := d.UserRepo().Search(database.StudentFilter{Years: []int{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID, third.ID}, userIDs(users))
	assert.NotContains(t, userIDs(users), first.ID)
}

func TestSearchInstituteFilterExcludesUnaffiliated(t *testing.T) {
	d := newTestDatabase(t)
	iit := createInstitute(t, d, "IIT Bombay")
	nit := createInstitute(t, d, "NIT Calicut")

	atIIT := createUser(t, d, "iit", "At IIT", 2, "Electronics", uintPtr(iit.ID))
	createUser(t, d, "nit", "At NIT", 2, "Electronics", uintPtr(nit.ID))
	createUser(t, d, "nowhere", "No Institute", 2, "Electronics", nil)

	users, err := d.UserRepo().Search(database.StudentFilter{Institutes: []string{"IIT Bombay"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{atIIT.ID}, userIDs(users))
}

func TestSearchBranchFilterAndExcludeID(t *testing.T) {
	d := newTestDatabase(t)
	cs1 := createUser(t, d, "cs1", "CS One", 2, "Computer Science", nil)
	cs2 := createUser(t, d, "cs2", "CS Two", 2, "Computer Science", nil)
	createUser(t, d, "mech", "Mech One", 2, "Mechanical", nil)

	users, err := d.UserRepo().Search(database.StudentFilter{
		Branches:  []string{"Computer Science"},
		ExcludeID: cs1.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{cs2.ID}, userIDs(users))
}

func TestSearchCombinesAllFacets(t *testing.T) {
	d := newTestDatabase(t)
	iit := createInstitute(t, d, "IIT Bombay")
	python := createSkill(t, d, "Python")

	match := createUser(t, d, "match", "Priya Sharma", 2, "Computer Science", uintPtr(iit.ID))
	giveSkill(t, d, match, python, 4)

	wrongYear := createUser(t, d, "wrongyear", "Priya Menon", 4, "Computer Science", uintPtr(iit.ID))
	giveSkill(t, d, wrongYear, python, 4)

	lowRating := createUser(t, d, "lowrating", "Priya Nair", 2, "Computer Science", uintPtr(iit.ID))
	giveSkill(t, d, lowRating, python, 2)

	users, err := d.UserRepo().Search(database.StudentFilter{
		Term:         "priya",
		Institutes:   []string{"IIT Bombay"},
		Branches:     []string{"Computer Science"},
		Years:        []int{2},
		SkillRatings: []database.SkillRating{{Name: "Python", MinRating: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{match.ID}, userIDs(users))
}

func TestSearchPreloadsSkillRows(t *testing.T) {
	d := newTestDatabase(t)
	python := createSkill(t, d, "Python")
	html := createSkill(t, d, "HTML")

	user := createUser(t, d, "loaded", "Loaded User", 2, "Computer Science", nil)
	giveSkill(t, d, user, python, 4)
	giveSkill(t, d, user, html, 3)

	users, err := d.UserRepo().Search(database.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, users, 1)

	ratings := map[string]int{}
	for _, us := range users[0].Skills {
		ratings[us.Skill.Name] = us.Rating
	}
	assert.Equal(t, map[string]int{"Python": 4, "HTML": 3}, ratings)
}

func TestQuickSearch(t *testing.T) {
	d := newTestDatabase(t)
	byName := createUser(t, d, "quick1", "Findme Person", 1, "Computer Science", nil)
	byEmail := createUser(t, d, "findme2", "Someone Else", 1, "Computer Science", nil)
	createUser(t, d, "other", "Unrelated", 1, "Computer Science", nil)

	t.Run("matches name or email", func(t *testing.T) {
		users, err := d.UserRepo().QuickSearch("findme", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, []uint{byName.ID, byEmail.ID}, userIDs(users))
	})

	t.Run("excludes requested id", func(t *testing.T) {
		users, err := d.UserRepo().QuickSearch("findme", byName.ID, 10)
		require.NoError(t, err)
		assert.Equal(t, []uint{byEmail.ID}, userIDs(users))
	})

	t.Run("caps results", func(t *testing.T) {
		users, err := d.UserRepo().QuickSearch("findme", 0, 1)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestDistinctBranches(t *testing.T) {
	d := newTestDatabase(t)
	createUser(t, d, "b1", "B One", 1, "Computer Science", nil)
	createUser(t, d, "b2", "B Two", 2, "Computer Science", nil)
	createUser(t, d, "b3", "B Three", 2, "Electronics", nil)

	noBranch := &models.User{Username: "nobranch", Email: "nobranch@example.com"}
	require.NoError(t, noBranch.SetPassword("secret-pass"))
	require.NoError(t, d.UserRepo().Add(noBranch))

	branches, err := d.UserRepo().DistinctBranches()
	require.NoError(t, err)
	assert.Equal(t, []string{"Computer Science", "Electronics"}, branches)
}

func TestUserSkillUniquePerPair(t *testing.T) {
	d := newTestDatabase(t)
	python := createSkill(t, d, "Python")
	user := createUser(t, d, "unique", "Unique User", 2, "Computer Science", nil)
	giveSkill(t, d, user, python, 3)

	err := d.UserSkillRepo().Add(&models.UserSkill{
		UserID:  user.ID,
		SkillID: python.ID,
		Rating:  5,
	})
	assert.Error(t, err)
}

func TestFindByUniqueFields(t *testing.T) {
	d := newTestDatabase(t)
	user := createUser(t, d, "unique2", "Unique Two", 2, "Computer Science", nil)
	phone := "+911234567890"
	user.Phone = &phone
	require.NoError(t, d.UserRepo().Update(user))

	found, err := d.UserRepo().FindByUsername("unique2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	found, err = d.UserRepo().FindByEmail("unique2@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)

	found, err = d.UserRepo().FindByPhone(phone)
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := d.UserRepo().FindByUsername("ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
