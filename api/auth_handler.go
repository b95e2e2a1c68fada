package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/student-directory-backend/database"
	"github.com/rpupo63/student-directory-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	validate  *validator.Validate
	db        database.Database
	jwtSecret []byte
	tokenTTL  time.Duration
}

func newAuthHandler(db database.Database, jwtSecret []byte, tokenTTL time.Duration) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		validate:  validator.New(),
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// skillInput is a submitted {name, rating} pair. Unknown skill names are
// dropped, not created.
type skillInput struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

type registerRequest struct {
	Username      string       `json:"username" validate:"required"`
	Password      string       `json:"password" validate:"required,min=6"`
	Email         string       `json:"email" validate:"required"`
	FullName      *string      `json:"full_name"`
	Phone         *string      `json:"phone"`
	Year          *int         `json:"year"`
	Bio           *string      `json:"bio"`
	Branch        *string      `json:"branch"`
	InstituteName *string      `json:"institute_name"`
	Skills        []skillInput `json:"skills"`
}

// login checks a username/password pair.
// @Summary Log in
// @Description Verifies credentials and returns the user id plus a signed token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "success, message, user_id, token"
// @Failure 400 {object} map[string]any "missing fields"
// @Failure 401 {object} map[string]any "bad credentials"
// @Router /api/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteResult(w, http.StatusBadRequest, false, "Username and password required", nil)
			return
		}
		if req.Username == "" || req.Password == "" {
			h.responder.WriteResult(w, http.StatusBadRequest, false, "Username and password required", nil)
			return
		}

		user, err := h.db.UserRepo().FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !user.CheckPassword(req.Password) {
			h.responder.WriteResult(w, http.StatusUnauthorized, false, "Invalid username or password.", nil)
			return
		}

		token, err := issueToken(h.jwtSecret, user.ID, h.tokenTTL)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to sign login token")
			h.responder.WriteResult(w, http.StatusInternalServerError, false, "An error occurred: "+err.Error(), nil)
			return
		}

		h.responder.WriteResult(w, http.StatusOK, true, "Login successful!", map[string]any{
			"user_id": user.ID,
			"token":   token,
		})
	}
}

// register creates a new user with their submitted skills attached.
// @Summary Register
// @Description Creates a user account; the whole flow runs in one transaction
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any "success, message"
// @Failure 400 {object} map[string]any "validation or duplicate errors"
// @Failure 500 {object} map[string]any "unexpected failure, rolled back"
// @Router /api/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteResult(w, http.StatusBadRequest, false, "Username, password, and email are required.", nil)
			return
		}

		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteResult(w, http.StatusBadRequest, false, validationMessage(err), nil)
			return
		}

		// Duplicate checks, each with its own message.
		if existing, err := h.db.UserRepo().FindByUsername(req.Username); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteResult(w, http.StatusBadRequest, false, "Username already taken.", nil)
			return
		}
		if existing, err := h.db.UserRepo().FindByEmail(req.Email); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteResult(w, http.StatusBadRequest, false, "Email already registered.", nil)
			return
		}
		if req.Phone != nil && *req.Phone != "" {
			if existing, err := h.db.UserRepo().FindByPhone(*req.Phone); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
				return
			} else if existing != nil {
				h.responder.WriteResult(w, http.StatusBadRequest, false, "Phone number already registered.", nil)
				return
			}
		}

		err := h.db.Transaction(func(tx database.Database) error {
			user := &models.User{
				Username: req.Username,
				FullName: req.FullName,
				Phone:    req.Phone,
				Email:    req.Email,
				Year:     req.Year,
				Bio:      req.Bio,
				Branch:   req.Branch,
			}
			if err := user.SetPassword(req.Password); err != nil {
				return err
			}

			if req.InstituteName != nil {
				institute, err := tx.InstituteRepo().FindByName(*req.InstituteName)
				if err != nil {
					return err
				}
				if institute != nil {
					user.InstituteID = &institute.ID
				}
			}

			if err := tx.UserRepo().Add(user); err != nil {
				return err
			}

			return attachSkills(tx, user.ID, req.Skills)
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("Registration failed, rolled back")
			h.responder.WriteResult(w, http.StatusInternalServerError, false, "An error occurred: "+err.Error(), nil)
			return
		}

		h.responder.WriteResult(w, http.StatusCreated, true, "Account created successfully! Please log in.", nil)
	}
}

// attachSkills resolves each submitted skill by name and inserts a
// rating row for the ones that exist. A name listed more than once in
// one payload counts once, with the last rating given; each user holds
// at most one rating per skill.
func attachSkills(tx database.Database, userID uint, skills []skillInput) error {
	names := make([]string, 0, len(skills))
	ratings := make(map[string]int, len(skills))
	for _, input := range skills {
		if _, seen := ratings[input.Name]; !seen {
			names = append(names, input.Name)
		}
		ratings[input.Name] = input.Rating
	}

	for _, name := range names {
		skill, err := tx.SkillRepo().FindByName(name)
		if err != nil {
			return err
		}
		if skill == nil {
			continue
		}
		err = tx.UserSkillRepo().Add(&models.UserSkill{
			UserID:  userID,
			SkillID: skill.ID,
			Rating:  models.ClampRating(ratings[name]),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// validationMessage turns the first validator failure into its
// client-facing message.
func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		if fe.Field() == "Password" && fe.Tag() == "min" {
			return "Password must be at least 6 characters."
		}
	}
	return "Username, password, and email are required."
}
