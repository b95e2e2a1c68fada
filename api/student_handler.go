package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/student-directory-backend/database"
	"github.com/rpupo63/student-directory-backend/errs"
	"github.com/rpupo63/student-directory-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const quickSearchLimit = 10

type studentHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newStudentHandler(db database.Database) studentHandler {
	logger := log.With().Str("handlerName", "studentHandler").Logger()

	return studentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// parseSkillsFilter parses "Name:Level,Name2:Level2" into skill rating
// thresholds. Malformed input is a client error, not a silent skip.
func parseSkillsFilter(raw string) ([]database.SkillRating, error) {
	if raw == "" {
		return nil, nil
	}
	var ratings []database.SkillRating
	for _, item := range strings.Split(raw, ",") {
		parts := strings.SplitN(item, ":", 2)
		if len(parts) != 2 {
			return nil, errs.NewInvalidFieldError("skills",
				"Invalid skills filter format. Use 'SkillName:Level,SkillName2:Level2'")
		}
		level, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, errs.NewInvalidFieldError("skills",
				"Invalid skills filter format. Use 'SkillName:Level,SkillName2:Level2'")
		}
		ratings = append(ratings, database.SkillRating{Name: parts[0], MinRating: level})
	}
	return ratings, nil
}

// parseYears parses the multi-valued year query parameter.
func parseYears(raw []string) ([]int, error) {
	var years []int
	for _, y := range raw {
		year, err := strconv.Atoi(y)
		if err != nil {
			return nil, errs.NewInvalidFieldError("year", "Invalid year format. Use numbers.")
		}
		years = append(years, year)
	}
	return years, nil
}

// parseExcludeID reads exclude_id, defaulting to 0 when absent or
// malformed.
func parseExcludeID(r *http.Request) uint {
	id, err := strconv.ParseUint(r.URL.Query().Get("exclude_id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

// searchStudents runs the faceted student search.
// @Summary Search students
// @Description Free-text term over name/skill plus institute, branch, year and per-skill minimum rating filters, ANDed together
// @Tags Students
// @Produce json
// @Success 200 {array} userDetailView
// @Failure 400 {object} ErrorResponse "malformed skills or year values"
// @Router /api/students/search [get]
func (h studentHandler) searchStudents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		skillRatings, err := parseSkillsFilter(query.Get("skills"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		years, err := parseYears(query["year"])
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filter := database.StudentFilter{
			Term:         query.Get("q"),
			Institutes:   query["institute"],
			Branches:     query["branch"],
			Years:        years,
			SkillRatings: skillRatings,
			ExcludeID:    parseExcludeID(r),
		}

		users, err := h.db.UserRepo().Search(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "students", err))
			return
		}

		results := make([]userDetailView, 0, len(users))
		for _, user := range users {
			results = append(results, renderUserDetail(user))
		}
		h.responder.WriteJSON(w, results)
	}
}

// getProfile returns one rendered user with skills and projects.
// @Summary Get profile
// @Tags Students
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} userDetailView
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /api/profile/{userID} [get]
func (h studentHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.db.UserRepo().FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.WriteJSON(w, renderUserDetail(user))
	}
}

type projectNameInput struct {
	Name string `json:"name"`
}

type profileUpdateRequest struct {
	FullName      *string            `json:"full_name"`
	Phone         *string            `json:"phone"`
	Email         *string            `json:"email"`
	Year          *int               `json:"year"`
	Bio           *string            `json:"bio"`
	Branch        *string            `json:"branch"`
	InstituteName *string            `json:"institute_name"`
	Skills        []skillInput       `json:"skills"`
	Projects      []projectNameInput `json:"projects"`
}

// updateProfile overwrites a user's profile fields, replaces their skill
// set, and adds any new project memberships. The overwrite is
// unconditional for the optional fields: leaving one out clears its
// stored value. Email is required and never cleared.
// @Summary Update profile
// @Tags Students
// @Accept json
// @Produce json
// @Param userID path int true "User ID"
// @Success 200 {object} map[string]any "success, message"
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} map[string]any "failure, rolled back"
// @Router /api/profile/{userID} [post]
func (h studentHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUintParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// When the token middleware is mounted, a caller may only save
		// their own profile.
		if actorID, err := ctxGetUserID(r.Context()); err == nil && actorID != userID {
			h.responder.WriteError(w, errs.NewForbiddenError("You can only edit your own profile."))
			return
		}

		user, err := h.db.UserRepo().Get(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		var req profileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("profile"))
			return
		}

		// Email is the one required column, so the full overwrite does
		// not extend to clearing it.
		if req.Email == nil || *req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingFieldError("email"))
			return
		}

		user.FullName = req.FullName
		user.Phone = req.Phone
		user.Year = req.Year
		user.Bio = req.Bio
		user.Branch = req.Branch
		user.Email = *req.Email

		err = h.db.Transaction(func(tx database.Database) error {
			if req.InstituteName != nil {
				institute, err := tx.InstituteRepo().FindByName(*req.InstituteName)
				if err != nil {
					return err
				}
				if institute != nil {
					user.InstituteID = &institute.ID
				}
			}

			if err := tx.UserRepo().Update(user); err != nil {
				return err
			}

			// Replace-all-then-reinsert keeps the stored skill set equal
			// to the submitted one.
			if err := tx.UserSkillRepo().DeleteByUser(user.ID); err != nil {
				return err
			}
			if err := attachSkills(tx, user.ID, req.Skills); err != nil {
				return err
			}

			// Memberships are add-only: submitted projects the user is
			// not yet part of are joined, nothing is ever removed.
			for _, input := range req.Projects {
				project, err := tx.ProjectRepo().FindByName(input.Name)
				if err != nil {
					return err
				}
				if project == nil {
					continue
				}
				exists, err := tx.ProjectMemberRepo().Exists(user.ID, project.ID)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				err = tx.ProjectMemberRepo().Add(&models.ProjectMember{
					UserID:    user.ID,
					ProjectID: project.ID,
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			h.logger.Error().Err(err).Uint("userID", userID).Msg("Profile update failed, rolled back")
			h.responder.WriteResult(w, http.StatusInternalServerError, false, "An error occurred: "+err.Error(), nil)
			return
		}

		h.responder.WriteResult(w, http.StatusOK, true, "Profile successfully saved!", nil)
	}
}

// getInstitutes lists all institutes.
// @Summary List institutes
// @Tags Lookups
// @Produce json
// @Success 200 {array} refView
// @Router /api/institutes [get]
func (h studentHandler) getInstitutes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		institutes, err := h.db.InstituteRepo().FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find institutes", "institutes", err))
			return
		}

		results := make([]refView, 0, len(institutes))
		for _, institute := range institutes {
			results = append(results, refView{ID: institute.ID, Name: institute.Name})
		}
		h.responder.WriteJSON(w, results)
	}
}

// searchSkills returns up to 10 skills matching the term.
// @Summary Search skills
// @Tags Lookups
// @Produce json
// @Success 200 {array} refView
// @Router /api/skills/search [get]
func (h studentHandler) searchSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")
		if term == "" {
			h.responder.WriteJSON(w, []refView{})
			return
		}

		skills, err := h.db.SkillRepo().SearchByName(term, quickSearchLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "skills", err))
			return
		}

		results := make([]refView, 0, len(skills))
		for _, skill := range skills {
			results = append(results, refView{ID: skill.ID, Name: skill.Name})
		}
		h.responder.WriteJSON(w, results)
	}
}

// getBranches lists every distinct non-null branch value.
// @Summary List branches
// @Tags Lookups
// @Produce json
// @Success 200 {array} string
// @Router /api/branches [get]
func (h studentHandler) getBranches() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := h.db.UserRepo().DistinctBranches()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find branches", "users", err))
			return
		}
		if branches == nil {
			branches = []string{}
		}
		h.responder.WriteJSON(w, branches)
	}
}

// searchUsers returns up to 10 users matching name or email, without
// skills, for member pickers.
// @Summary Quick user search
// @Tags Students
// @Produce json
// @Success 200 {array} userView
// @Router /api/users/search [get]
func (h studentHandler) searchUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")
		if term == "" {
			h.responder.WriteJSON(w, []userView{})
			return
		}

		users, err := h.db.UserRepo().QuickSearch(term, parseExcludeID(r), quickSearchLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "users", err))
			return
		}

		results := make([]userView, 0, len(users))
		for _, user := range users {
			results = append(results, renderUser(user))
		}
		h.responder.WriteJSON(w, results)
	}
}

// parseUintParam reads a positive integer chi URL parameter.
func parseUintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + name)
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return uint(value), nil
}
