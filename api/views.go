package api

import (
	"fmt"
	"time"

	"github.com/rpupo63/student-directory-backend/models"
)

// userView is the flat client shape of a user. The password hash never
// appears here; the image URL is a deterministic placeholder derived
// from the user id.
type userView struct {
	ID            uint    `json:"id"`
	FullName      *string `json:"full_name"`
	Phone         *string `json:"phone"`
	Email         string  `json:"email"`
	Year          *int    `json:"year"`
	Branch        *string `json:"branch"`
	Bio           *string `json:"bio"`
	InstituteName *string `json:"institute_name"`
	Image         string  `json:"image"`
}

// userSkillView is one held skill inside a detailed user view.
type userSkillView struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// refView is a bare {id, name} reference used for institutes, tools and
// project pickers.
type refView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// userDetailView extends userView with the user's skills and project
// memberships flattened out of their join rows.
type userDetailView struct {
	userView
	Skills   []userSkillView `json:"skills"`
	Projects []refView       `json:"projects"`
}

// projectView is the nested client shape of a project. Members are
// rendered as detailed users, skills included.
type projectView struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	ProjectType *string          `json:"project_type"`
	StartDate   *string          `json:"start_date"`
	Status      *string          `json:"status"`
	Tools       []refView        `json:"tools"`
	Members     []userDetailView `json:"members"`
}

// renderUser converts a stored user into its flat view. It reads the
// preloaded institute reference and never touches the store.
func renderUser(u *models.User) userView {
	var instituteName *string
	if u.Institute != nil {
		instituteName = &u.Institute.Name
	}
	return userView{
		ID:            u.ID,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Email:         u.Email,
		Year:          u.Year,
		Branch:        u.Branch,
		Bio:           u.Bio,
		InstituteName: instituteName,
		Image:         fmt.Sprintf("https://i.pravatar.cc/100?img=%d", u.ID),
	}
}

// renderUserDetail converts a stored user with preloaded skill and
// membership rows into its detailed view. Missing associations render as
// empty arrays, never null.
func renderUserDetail(u *models.User) userDetailView {
	view := userDetailView{
		userView: renderUser(u),
		Skills:   []userSkillView{},
		Projects: []refView{},
	}
	for _, us := range u.Skills {
		view.Skills = append(view.Skills, userSkillView{
			ID:     us.Skill.ID,
			Name:   us.Skill.Name,
			Rating: us.Rating,
		})
	}
	for _, pm := range u.Memberships {
		view.Projects = append(view.Projects, refView{ID: pm.Project.ID, Name: pm.Project.Name})
	}
	return view
}

// renderProject converts a stored project with preloaded tool and member
// rows into its nested view. The start date renders as an ISO calendar
// date or null.
func renderProject(p *models.Project) projectView {
	view := projectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ProjectType: p.ProjectType,
		Status:      p.Status,
		Tools:       []refView{},
		Members:     []userDetailView{},
	}
	if p.StartDate != nil {
		iso := time.Time(*p.StartDate).Format("2006-01-02")
		view.StartDate = &iso
	}
	for _, pt := range p.Tools {
		view.Tools = append(view.Tools, refView{ID: pt.Tool.ID, Name: pt.Tool.Name})
	}
	for _, pm := range p.Members {
		user := pm.User
		view.Members = append(view.Members, renderUserDetail(&user))
	}
	return view
}
