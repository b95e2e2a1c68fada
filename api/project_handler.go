package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rpupo63/student-directory-backend/database"
	"github.com/rpupo63/student-directory-backend/errs"
	"github.com/rpupo63/student-directory-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newProjectHandler(db database.Database) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// getProjects lists projects, optionally filtered by name, newest start
// date first.
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {array} projectView
// @Router /api/projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.db.ProjectRepo().Search(r.URL.Query().Get("q"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		results := make([]projectView, 0, len(projects))
		for _, project := range projects {
			results = append(results, renderProject(project))
		}
		h.responder.WriteJSON(w, results)
	}
}

// getProject returns one rendered project with tools and members.
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} projectView
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := parseUintParam(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Project not found"))
			return
		}

		h.responder.WriteJSON(w, renderProject(project))
	}
}

// searchTools returns up to 10 tools matching the term.
// @Summary Search tools
// @Tags Lookups
// @Produce json
// @Success 200 {array} refView
// @Router /api/tools/search [get]
func (h projectHandler) searchTools() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")
		if term == "" {
			h.responder.WriteJSON(w, []refView{})
			return
		}

		tools, err := h.db.ToolRepo().SearchByName(term, quickSearchLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "tools", err))
			return
		}

		results := make([]refView, 0, len(tools))
		for _, tool := range tools {
			results = append(results, refView{ID: tool.ID, Name: tool.Name})
		}
		h.responder.WriteJSON(w, results)
	}
}

// searchProjects returns up to 10 bare {id, name} projects matching the
// term.
// @Summary Quick project search
// @Tags Projects
// @Produce json
// @Success 200 {array} refView
// @Router /api/projects/search [get]
func (h projectHandler) searchProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")
		if term == "" {
			h.responder.WriteJSON(w, []refView{})
			return
		}

		projects, err := h.db.ProjectRepo().SearchRefs(term, quickSearchLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "projects", err))
			return
		}

		results := make([]refView, 0, len(projects))
		for _, project := range projects {
			results = append(results, refView{ID: project.ID, Name: project.Name})
		}
		h.responder.WriteJSON(w, results)
	}
}

type createProjectRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	ProjectType *string  `json:"project_type"`
	Status      *string  `json:"status"`
	StartDate   *string  `json:"start_date"`
	Tools       []string `json:"tools"`
	CreatorID   *uint    `json:"creator_id"`
	Members     []uint   `json:"members"`
}

// createProject creates a project with its tool links and members. Tools
// are resolved by name or created on demand; the creator becomes the
// first member. The whole sequence commits or rolls back together.
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "success, message, project_id"
// @Failure 400 {object} map[string]any "missing name or bad start_date"
// @Failure 500 {object} map[string]any "failure, rolled back"
// @Router /api/projects/create [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteResult(w, http.StatusBadRequest, false, "Malformed project payload.", nil)
			return
		}
		if req.Name == "" {
			h.responder.WriteResult(w, http.StatusBadRequest, false, "Project name is required.", nil)
			return
		}

		var startDate *datatypes.Date
		if req.StartDate != nil && *req.StartDate != "" {
			parsed, err := time.Parse("2006-01-02", *req.StartDate)
			if err != nil {
				h.responder.WriteResult(w, http.StatusBadRequest, false, "Invalid start_date format. Use YYYY-MM-DD.", nil)
				return
			}
			date := datatypes.Date(parsed)
			startDate = &date
		}

		var projectID uint
		err := h.db.Transaction(func(tx database.Database) error {
			project := &models.Project{
				Name:        req.Name,
				Description: req.Description,
				ProjectType: req.ProjectType,
				Status:      req.Status,
				StartDate:   startDate,
			}
			if err := tx.ProjectRepo().Add(project); err != nil {
				return err
			}

			for _, name := range req.Tools {
				tool, err := tx.ToolRepo().FindOrCreate(name)
				if err != nil {
					return err
				}
				err = tx.ProjectToolRepo().Add(&models.ProjectTool{
					ToolID:    tool.ID,
					ProjectID: project.ID,
				})
				if err != nil {
					return err
				}
			}

			// Creator joins first; listed member ids follow. Unknown ids
			// are skipped, duplicates within the request are not re-added.
			added := make(map[uint]bool)
			memberIDs := req.Members
			if req.CreatorID != nil {
				memberIDs = append([]uint{*req.CreatorID}, memberIDs...)
			}
			for _, memberID := range memberIDs {
				if added[memberID] {
					continue
				}
				user, err := tx.UserRepo().Get(memberID)
				if err != nil {
					return err
				}
				if user == nil {
					continue
				}
				err = tx.ProjectMemberRepo().Add(&models.ProjectMember{
					UserID:    user.ID,
					ProjectID: project.ID,
				})
				if err != nil {
					return err
				}
				added[memberID] = true
			}

			projectID = project.ID
			return nil
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("Project creation failed, rolled back")
			h.responder.WriteResult(w, http.StatusInternalServerError, false, "An error occurred: "+err.Error(), nil)
			return
		}

		h.responder.WriteResult(w, http.StatusOK, true, "Project created!", map[string]any{
			"project_id": projectID,
		})
	}
}
